package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV is an Element backed by an idle mpv process driven over JSON-IPC.
// The process is started on the first Load and reused afterwards.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener

	// mu serialises IPC writes
	mu sync.Mutex

	handlerMu sync.Mutex
	onError   func(error)
}

// NewMPV creates an MPV element. No process is started yet.
func NewMPV() *MPV {
	exited := make(chan struct{})
	close(exited)
	return &MPV{exited: exited}
}

// CanPlayType reports the mime types mpv decodes on its own. HLS manifests
// are only claimed when player.native_hls is set.
func (m *MPV) CanPlayType(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch {
	case mime == constant.MimeHLS, mime == "application/x-mpegurl":
		return viper.GetBool(key.PlayerNativeHLS)
	case strings.HasPrefix(mime, "video/"), strings.HasPrefix(mime, "audio/"):
		return true
	default:
		return false
	}
}

// Load replaces the current file and leaves it paused.
func (m *MPV) Load(rawURL, title string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	if !m.IsRunning() {
		if err := m.start(); err != nil {
			return err
		}
	}

	if _, err := m.sendCommand("set_property", "pause", true); err != nil {
		return err
	}

	if _, err := m.sendCommand("loadfile", target, "replace"); err != nil {
		return fmt.Errorf("load %s: %w", target, err)
	}

	if title = sanitizeTitle(title); title != "" {
		if _, err := m.sendCommand("set_property", "force-media-title", title); err != nil {
			log.Warnf("mpv: set title: %v", err)
		}
	}

	return nil
}

// Play unpauses the loaded file. With player.autoplay disabled the file
// stays paused until started from the mpv window.
func (m *MPV) Play() error {
	if !viper.GetBool(key.PlayerAutoplay) {
		return ErrAutoplayBlocked
	}

	_, err := m.sendCommand("set_property", "pause", false)
	return err
}

// Unload stops playback. The idle process is kept for the next Load.
func (m *MPV) Unload() error {
	if !m.IsRunning() {
		return nil
	}

	_, err := m.sendCommand("stop")
	return err
}

func (m *MPV) OnError(handler func(error)) {
	m.handlerMu.Lock()
	defer m.handlerMu.Unlock()
	m.onError = handler
}

// Wait returns a channel closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// IsRunning reports whether an mpv process is alive.
func (m *MPV) IsRunning() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Close quits mpv, killing it if it does not exit in time.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if !m.IsRunning() {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) handleEvent(event Event) {
	err := event.Err()
	if err == nil {
		return
	}

	m.handlerMu.Lock()
	handler := m.onError
	m.handlerMu.Unlock()

	log.Warnf("mpv: %v", err)
	if handler != nil {
		handler(err)
	}
}

func (m *MPV) start() error {
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))
	}

	// only the socket and window flags, the user's mpv.conf decides the rest
	m.cmd = exec.Command("mpv",
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server="+m.socketPath,
		"--force-window=yes",
		"--idle=yes",
		"--pause=yes",
	)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if m.IsRunning() {
			log.Warn("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.handleEvent)
	if err := m.listener.Start(); err != nil {
		log.Warnf("mpv: %v", err)
	}

	return nil
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		if !m.IsRunning() {
			return errors.New("mpv exited before socket was ready")
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// sanitizeMediaTarget rejects inputs mpv would read as flags or that use a
// scheme other than http(s). Anything without a scheme is a local path.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	title = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(title)
}
