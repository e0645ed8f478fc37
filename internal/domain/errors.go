package domain

import (
	"errors"
	"sort"
	"strings"
)

// Message keys for user-facing notifications. They are resolved by a Translator.
const (
	KeyConferenceIDIsEmpty  = "welcomepage.conferenceIDIsEmpty"
	KeyRoomNameAllowedChars = "welcomepage.roomNameAllowedChars"
	KeyAPIError             = "welcomepage.apiError"
	KeyNoData               = "welcomepage.noData"
	KeyEventInPast          = "welcomepage.eventInPast"
	KeyEventInFuture        = "welcomepage.eventInFuture"
	KeyUsernameRequired     = "welcomepage.usernameRequired"
	KeyPasswordRequired     = "welcomepage.passwordRequired"
	KeyLoginFailed          = "welcomepage.loginFailed"
	KeyContactAdministrator = "welcomepage.contactAdministrator"
	KeyInvalidRoomFormat    = "welcomepage.invalidRoomFormat"
	KeySessionExpired       = "welcomepage.sessionExpired"
)

// WorkflowError is a rejection raised by the welcome workflow. Key is the
// message key presented to the user.
type WorkflowError struct {
	Code string
	Key  string
}

func (e *WorkflowError) Error() string { return e.Code }

// Sentinel errors for the join workflow. Compare with errors.Is.
var (
	ErrEmptyRoom           = &WorkflowError{Code: "room identifier is empty", Key: KeyConferenceIDIsEmpty}
	ErrForbiddenCharacter  = &WorkflowError{Code: "room identifier contains a forbidden character", Key: KeyRoomNameAllowedChars}
	ErrLookupFailed        = &WorkflowError{Code: "event lookup failed", Key: KeyAPIError}
	ErrNoData              = &WorkflowError{Code: "no event data for room", Key: KeyNoData}
	ErrEventInPast         = &WorkflowError{Code: "event has already ended", Key: KeyEventInPast}
	ErrEventInFuture       = &WorkflowError{Code: "event has not started yet", Key: KeyEventInFuture}
	ErrMissingUsername     = &WorkflowError{Code: "username is required", Key: KeyUsernameRequired}
	ErrMissingPassword     = &WorkflowError{Code: "password is required", Key: KeyPasswordRequired}
	ErrAuthFailed          = &WorkflowError{Code: "authentication failed", Key: KeyLoginFailed}
	ErrMeetingDetailFailed = &WorkflowError{Code: "meeting detail lookup failed", Key: KeyContactAdministrator}
	ErrInvalidRoomFormat   = &WorkflowError{Code: "room identifier does not match the input pattern", Key: KeyInvalidRoomFormat}
	ErrSessionRejected     = &WorkflowError{Code: "cached session was rejected", Key: KeySessionExpired}
)

// Errors that describe workflow control flow rather than a user mistake.
var (
	ErrSubmitInProgress = errors.New("a submit is already in progress")
	ErrStaleAttempt     = errors.New("attempt was superseded or cancelled")
	ErrNotAwaitingAuth  = errors.New("workflow is not waiting for a login")
)

// Sentinel errors shared by the backend.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("invalid user")
	ErrUsernameTaken      = errors.New("username already taken")
)

// DetailError attaches format arguments for the message key of Err.
type DetailError struct {
	Err  error
	Args []any
}

func (e *DetailError) Error() string { return e.Err.Error() }

func (e *DetailError) Unwrap() error { return e.Err }

// MessageArgs returns the format arguments attached to err, if any.
func MessageArgs(err error) []any {
	var de *DetailError
	if errors.As(err, &de) {
		return de.Args
	}
	return nil
}

// CharList spells out a character set as space separated runes, the way the
// allowed-characters notification lists them.
func CharList(chars string) string {
	return strings.Join(strings.Split(chars, ""), " ")
}

// ServerMessageError carries a message supplied by a remote service alongside
// the taxonomy error it belongs to.
type ServerMessageError struct {
	Err     error
	Message string
}

func (e *ServerMessageError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Message
}

func (e *ServerMessageError) Unwrap() error { return e.Err }

// FieldErrors maps form field names to their validation errors.
// Several fields may fail at once.
type FieldErrors map[string]error

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, field := range f.fields() {
		parts = append(parts, field+": "+f[field].Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes every field error so errors.Is matches any of them.
func (f FieldErrors) Unwrap() []error {
	out := make([]error, 0, len(f))
	for _, field := range f.fields() {
		out = append(out, f[field])
	}
	return out
}

func (f FieldErrors) fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MessageFor returns the notification for err: a literal server message when
// one was supplied, otherwise the message key of the matching taxonomy error.
// Unclassified errors map to the generic API error key.
func MessageFor(err error) (key, literal string) {
	var sm *ServerMessageError
	if errors.As(err, &sm) && sm.Message != "" {
		literal = sm.Message
	}
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Key, literal
	}
	return KeyAPIError, literal
}
