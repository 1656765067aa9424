package hls

import "fmt"

// EventType identifies a stream client event.
type EventType int

const (
	EventManifestParsed EventType = iota
	EventError
)

// ErrorKind classifies stream errors.
type ErrorKind int

const (
	NetworkError ErrorKind = iota
	ManifestError
	MediaError
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkError:
		return "network"
	case ManifestError:
		return "manifest"
	case MediaError:
		return "media"
	default:
		return "unknown"
	}
}

// Error is a stream error. Fatal errors end the session.
type Error struct {
	Kind  ErrorKind
	Fatal bool
	Err   error
}

func (e *Error) Error() string {
	severity := "non-fatal"
	if e.Fatal {
		severity = "fatal"
	}
	return fmt.Sprintf("%s %s error: %v", severity, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Variant is the rendition a client settled on.
type Variant struct {
	URL       string
	Bandwidth int
	Live      bool
}

// Event is emitted by a Client from its own goroutine.
type Event struct {
	Type    EventType
	Variant Variant
	Error   *Error
}

// Parsed builds a manifest-parsed event.
func Parsed(variant Variant) Event {
	return Event{Type: EventManifestParsed, Variant: variant}
}

// Fault builds an error event.
func Fault(kind ErrorKind, fatal bool, err error) Event {
	return Event{Type: EventError, Error: &Error{Kind: kind, Fatal: fatal, Err: err}}
}
