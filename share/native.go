package share

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/spf13/viper"
)

// Native shares through termux-share, the share sheet available on Android.
type Native struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(*exec.Cmd) error
}

// NewNative returns the native facility of the running platform.
func NewNative() *Native {
	return &Native{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      (*exec.Cmd).Run,
	}
}

func (n *Native) Share(ctx context.Context, request Request) error {
	if !viper.GetBool(key.ShareNative) || n.goos != constant.Android {
		return ErrUnavailable
	}

	bin, err := n.lookPath("termux-share")
	if err != nil {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, bin, "-a", "send")
	cmd.Stdin = strings.NewReader(request.Text + " " + request.URL)

	if err := n.run(cmd); err != nil {
		return fmt.Errorf("termux-share: %w", err)
	}
	return nil
}
