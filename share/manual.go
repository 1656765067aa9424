package share

import (
	"context"
	"fmt"
	"io"

	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/style"
)

// Manual prints the link so it can be selected and copied by hand.
type Manual struct {
	out io.Writer
}

// NewManual prints to out.
func NewManual(out io.Writer) *Manual {
	return &Manual{out: out}
}

func (m *Manual) Share(_ context.Context, request Request) error {
	if m.out == nil {
		return ErrUnavailable
	}

	_, err := fmt.Fprintf(m.out, "%s %s\n%s\n", icon.Get(icon.Share), style.Bold(request.Text), request.URL)
	return err
}
