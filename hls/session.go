// Package hls drives segmented HLS streams into a media element.
package hls

import (
	"context"
	"errors"
	"sync"

	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/player"
)

// ErrorMessage is shown when a stream fails.
const ErrorMessage = "Stream error. Please check the URL."

// State is the lifecycle state of a Session.
type State int

const (
	Unattached State = iota
	Loading
	Ready
	Errored
	Detached
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "error"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Status is a snapshot of a session.
type Status struct {
	State   State
	Message string
	Err     error
}

// Session owns at most one stream client bound to a media element.
type Session struct {
	element player.Element
	factory Factory

	mu         sync.Mutex
	state      State
	client     Client
	native     bool
	generation int
	message    string
	err        error
	teardowns  int
	onChange   func(Status)
}

// NewSession binds a session to element. Clients are built with factory.
func NewSession(element player.Element, factory Factory) *Session {
	return &Session{
		element: element,
		factory: factory,
		state:   Unattached,
	}
}

// OnChange sets the observer for transitions caused by the stream itself:
// manifest parsed and stream failures. Transitions requested through
// Mount and Detach are not reported.
func (s *Session) OnChange(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Mount plays manifestURL on the element. Any previous client is torn down
// first. When the element plays HLS itself no client is constructed.
func (s *Session) Mount(ctx context.Context, manifestURL, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	s.generation++
	s.message, s.err = "", nil
	generation := s.generation

	if s.element.CanPlayType(constant.MimeHLS) {
		return s.mountNativeLocked(generation, manifestURL, title)
	}

	client := s.factory(func(event Event) {
		s.handle(generation, event)
	})
	s.client = client
	s.state = Loading

	if err := client.Load(ctx, manifestURL); err != nil {
		s.failLocked(err)
		return err
	}

	if err := client.Attach(s.element); err != nil {
		s.failLocked(err)
		return err
	}

	return nil
}

func (s *Session) mountNativeLocked(generation int, manifestURL, title string) error {
	s.native = true
	s.element.OnError(func(err error) {
		s.handle(generation, Fault(MediaError, true, err))
	})

	if err := s.element.Load(manifestURL, title); err != nil {
		s.failLocked(err)
		return err
	}

	s.state = Ready
	s.playLocked()
	return nil
}

// Detach tears the session down. It is safe to call in any state and a
// no-op once detached.
func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Detached {
		return
	}

	s.releaseLocked()
	s.generation++
	s.state = Detached
	s.message, s.err = "", nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the current state with its error message.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Live reports how many clients are alive, zero or one.
func (s *Session) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return 1
	}
	return 0
}

// Teardowns returns how many clients have been destroyed.
func (s *Session) Teardowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teardowns
}

func (s *Session) handle(generation int, event Event) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}

	changed := false
	switch event.Type {
	case EventManifestParsed:
		if s.state == Loading {
			log.Infof("hls: manifest parsed, playing %s", event.Variant.URL)
			s.state = Ready
			s.playLocked()
			changed = true
		}
	case EventError:
		if event.Error == nil {
			break
		}

		if !event.Error.Fatal {
			log.Warnf("hls: %v", event.Error)
			break
		}

		if s.state == Loading || s.state == Ready {
			s.failLocked(event.Error)
			changed = true
		}
	}

	status, observer := s.statusLocked(), s.onChange
	s.mu.Unlock()

	if changed && observer != nil {
		observer(status)
	}
}

func (s *Session) playLocked() {
	err := s.element.Play()
	switch {
	case err == nil:
	case errors.Is(err, player.ErrAutoplayBlocked):
		log.Info("hls: autoplay blocked, waiting for the user to start playback")
	default:
		log.Warnf("hls: play: %v", err)
	}
}

// failLocked moves to Errored and destroys the client.
func (s *Session) failLocked(err error) {
	log.Errorf("hls: %v", err)
	s.releaseLocked()
	s.state = Errored
	s.message = ErrorMessage
	s.err = err
}

// releaseLocked destroys the client, or releases the element when it was
// playing the stream natively.
func (s *Session) releaseLocked() {
	if s.client != nil {
		s.client.Destroy()
		s.client = nil
		s.teardowns++
	}

	if s.native {
		s.native = false
		s.element.OnError(nil)
		if err := s.element.Unload(); err != nil {
			log.Warnf("hls: release element: %v", err)
		}
	}
}

func (s *Session) statusLocked() Status {
	return Status{State: s.state, Message: s.message, Err: s.err}
}
