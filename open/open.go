// Package open launches URLs with the system handler or a chosen application.
package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/seriesgenius/seriesgenius/constant"
)

// ErrUnsupportedOS is returned on platforms without a known launcher.
var ErrUnsupportedOS = errors.New("unsupported OS")

// Start opens input with the default system handler without waiting for it.
func Start(input string) error {
	return StartWith(input, "")
}

// StartWith opens input with app, or the default handler when app is empty,
// without waiting for it.
func StartWith(input, app string) error {
	cmd, err := Command(runtime.GOOS, input, app)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}

	// reap in the background, the handler may outlive us
	go func() { _ = cmd.Wait() }()
	return nil
}

// Command builds the launcher invocation for goos.
func Command(goos, input, app string) (*exec.Cmd, error) {
	if app == "" {
		switch goos {
		case constant.Windows:
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
		case constant.Darwin:
			return exec.Command("open", input), nil
		case constant.Linux, constant.FreeBSD:
			return exec.Command("xdg-open", input), nil
		case constant.Android:
			return exec.Command("termux-open", input), nil
		}
	} else {
		switch goos {
		case constant.Windows:
			// cmd's start treats & as a command separator
			escaped := strings.ReplaceAll(input, "&", "^&")
			return exec.Command("cmd", "/C", "start", "", app, escaped), nil
		case constant.Darwin:
			return exec.Command("open", "-a", app, input), nil
		case constant.Linux, constant.FreeBSD:
			return exec.Command(app, input), nil
		case constant.Android:
			return exec.Command("termux-open", "--choose", input), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
