package share

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/spf13/viper"
)

// Clipboard copies the link to the system clipboard.
type Clipboard struct {
	unsupported bool
	write       func(string) error
}

// NewClipboard returns the system clipboard facility.
func NewClipboard() *Clipboard {
	return &Clipboard{
		unsupported: clipboard.Unsupported,
		write:       clipboard.WriteAll,
	}
}

func (c *Clipboard) Share(_ context.Context, request Request) error {
	if !viper.GetBool(key.ShareClipboard) || c.unsupported {
		return ErrUnavailable
	}

	return c.write(request.URL)
}
