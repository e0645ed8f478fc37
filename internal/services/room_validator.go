package services

import (
	"regexp"
	"strings"

	"meetinggate/internal/domain"
)

// DefaultForbiddenChars is the widest forbidden set seen on the welcome page.
const DefaultForbiddenChars = domain.DefaultForbiddenChars

// RoomValidator checks room identifiers against a configurable set of
// forbidden characters.
type RoomValidator struct {
	forbidden string
}

// NewRoomValidator returns a validator rejecting every rune in forbidden.
// An empty set falls back to DefaultForbiddenChars.
func NewRoomValidator(forbidden string) *RoomValidator {
	if forbidden == "" {
		forbidden = DefaultForbiddenChars
	}
	return &RoomValidator{forbidden: forbidden}
}

// Validate trims raw and returns the room identifier, or ErrEmptyRoom /
// ErrForbiddenCharacter. The latter carries the configured set so the
// notification lists the characters actually rejected.
func (v *RoomValidator) Validate(raw string) (string, error) {
	room := strings.TrimSpace(raw)
	if room == "" {
		return "", domain.ErrEmptyRoom
	}
	if v.HasForbidden(room) {
		return "", &domain.DetailError{Err: domain.ErrForbiddenCharacter, Args: []any{domain.CharList(v.Forbidden())}}
	}
	return room, nil
}

// HasForbidden reports whether s contains any forbidden character.
func (v *RoomValidator) HasForbidden(s string) bool {
	return strings.ContainsAny(s, v.forbidden)
}

// Forbidden returns the configured character set.
func (v *RoomValidator) Forbidden() string { return v.forbidden }

// PatternValidity implements domain.ValidityChecker with an anchored regular
// expression, the way an input's pattern attribute is evaluated.
type PatternValidity struct {
	re *regexp.Regexp
}

// NewPatternValidity compiles pattern. An empty pattern returns a nil checker,
// meaning no constraint is attached to the input.
func NewPatternValidity(pattern string) (domain.ValidityChecker, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &PatternValidity{re: re}, nil
}

func (p *PatternValidity) Valid(room string) bool {
	return p.re.MatchString(room)
}
