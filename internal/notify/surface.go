// Package notify reports workflow failures to the user as transient
// notifications, optionally backed by an auto-clearing error flag.
package notify

import (
	"sync"
	"time"

	"meetinggate/internal/domain"
)

// Style selects how the surface keeps error state.
type Style string

const (
	// StyleFlag mutates ErrorState and reverts it after ClearAfter.
	StyleFlag Style = "flag"
	// StyleToast only emits the notification and keeps no state.
	StyleToast Style = "toast"
)

// DefaultClearAfter is how long a flag-backed error stays active.
const DefaultClearAfter = 3 * time.Second

// ErrorState is the flag-backed error shown next to the room input.
type ErrorState struct {
	Active     bool
	IsEmpty    bool
	MessageKey string
}

var idleState = ErrorState{MessageKey: domain.KeyRoomNameAllowedChars}

// Surface is the error/notification surface of the welcome page.
type Surface struct {
	notifier   domain.Notifier
	translator domain.Translator
	style      Style
	clearAfter time.Duration

	mu     sync.Mutex
	state  ErrorState
	timer  *time.Timer
	gen    uint64
	closed bool
}

// NewSurface returns a Surface. Unknown styles behave as StyleFlag and a
// non-positive clearAfter uses DefaultClearAfter.
func NewSurface(notifier domain.Notifier, translator domain.Translator, style Style, clearAfter time.Duration) *Surface {
	if style != StyleToast {
		style = StyleFlag
	}
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	return &Surface{
		notifier:   notifier,
		translator: translator,
		style:      style,
		clearAfter: clearAfter,
		state:      idleState,
	}
}

// Report shows the notification for err. A literal server message wins over
// the taxonomy message key.
func (s *Surface) Report(err error) {
	if err == nil {
		return
	}
	key, literal := domain.MessageFor(err)
	if literal != "" {
		s.emit(key, literal)
		return
	}
	s.emit(key, s.translate(key, domain.MessageArgs(err)...))
}

func (s *Surface) translate(key string, args ...any) string {
	if s.translator == nil {
		return key
	}
	return s.translator.Translate(key, args...)
}

func (s *Surface) emit(key, message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
	if s.style != StyleFlag {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = ErrorState{
		Active:     true,
		IsEmpty:    key == domain.KeyConferenceIDIsEmpty,
		MessageKey: key,
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.clearAfter, func() { s.clearIfCurrent(gen) })
}

func (s *Surface) clearIfCurrent(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.state = idleState
	s.timer = nil
}

// Clear resets the error flag, e.g. after a successful action.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state = idleState
}

// State returns the current error flag. Toast-style surfaces are always idle.
func (s *Surface) State() ErrorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops the pending auto-clear timer. Later reports still notify but
// no longer touch the flag.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.closed = true
}
