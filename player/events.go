package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/seriesgenius/seriesgenius/log"
)

// Event is an unsolicited message mpv broadcasts to IPC clients.
type Event struct {
	Name      string `json:"event"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// Failed reports whether the event ends the current file because of an error.
func (e Event) Failed() bool {
	return e.Name == "end-file" && e.Reason == "error"
}

// Err returns the playback error carried by a failed end-file event.
func (e Event) Err() error {
	if !e.Failed() {
		return nil
	}

	if e.FileError == "" {
		return ErrUnsupported
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, e.FileError)
}

// EventListener keeps a connection to mpv open and forwards its events.
type EventListener struct {
	socketPath string
	callback   func(Event)

	mu   sync.Mutex
	conn net.Conn
}

// NewEventListener creates a listener for socketPath.
func NewEventListener(socketPath string, callback func(Event)) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start connects and begins reading events in the background.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}
	el.conn = conn

	go el.readLoop(conn)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection, which ends the read loop.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.conn == nil {
		return
	}

	_ = el.conn.Close()
	el.conn = nil
}

func (el *EventListener) readLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		el.dispatch(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil {
		log.Debugf("event listener stopped: %v", err)
	}
}

func (el *EventListener) dispatch(line []byte) {
	var event Event
	if err := json.Unmarshal(line, &event); err != nil || event.Name == "" {
		return
	}

	if el.callback != nil {
		el.callback(event)
	}
}
