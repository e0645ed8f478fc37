package domain

import "context"

// MeetingDetails are the join details for one user in one event.
// MeetingUniqueID may be empty.
type MeetingDetails struct {
	MeetingUniqueID string `json:"meetingUniqueId"`
}

// MeetingDetailFetcher fetches join details keyed by (userID, eventID).
type MeetingDetailFetcher interface {
	FetchMeetingDetails(ctx context.Context, userID, eventID string) (*MeetingDetails, error)
}

// MeetingRepository stores the meeting unique ids assigned per user and event.
// GetMeetingUniqueID returns ErrNotFound when no row exists.
type MeetingRepository interface {
	GetMeetingUniqueID(ctx context.Context, userID, eventID string) (string, error)
}

// JoinTicket describes the conference the user is about to enter.
type JoinTicket struct {
	RoomID          string
	EventID         string
	UserID          string
	MeetingUniqueID string
}

// Joiner hands off to the conferencing system once every gate passed.
// It owns navigation and session establishment from that point.
type Joiner interface {
	Join(ctx context.Context, ticket JoinTicket) error
}

// ValidityChecker is the optional native form-validity check run right
// before joining.
type ValidityChecker interface {
	Valid(room string) bool
}

// Notifier is a sink for transient, non-blocking user notifications.
type Notifier interface {
	Notify(message string)
}

// Translator resolves message keys to locale strings.
type Translator interface {
	Translate(key string, args ...any) string
}
