package domain

import (
	"context"
	"time"
)

// DefaultForbiddenChars is the widest set of characters rejected in a room
// identifier.
const DefaultForbiddenChars = "?&:'\"%#./"

// EventRecord is the scheduled meeting resolved for a room identifier.
// swagger:model EventRecord
type EventRecord struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"eventStartTime"`
	EndTime     time.Time `json:"eventEndTime"`
}

// NewEventRecord returns an EventRecord with the given fields.
func NewEventRecord(id, roomID, name string, start, end time.Time) *EventRecord {
	return &EventRecord{
		ID:        id,
		RoomID:    roomID,
		Name:      name,
		StartTime: start,
		EndTime:   end,
	}
}

// EventLookup resolves a room identifier to its event. Implementations return
// ErrLookupFailed for transport failures and ErrNoData for an empty body.
type EventLookup interface {
	LookupEvent(ctx context.Context, roomID string) (*EventRecord, error)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	GetByRoomID(ctx context.Context, roomID string) (*EventRecord, error)
}

// EventService defines the backend business logic behind the event endpoints.
type EventService interface {
	// GetDetails returns the event for roomID, or nil when none exists.
	GetDetails(ctx context.Context, roomID string) (*EventRecord, error)
	// GetMeta returns the join details for a user in an event. A missing
	// mapping yields an empty MeetingUniqueID, not an error.
	GetMeta(ctx context.Context, userID, eventID string) (*MeetingDetails, error)
}
