package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"meetinggate/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// GetByRoomID returns the event running in the room now. When none is
// running, the latest-starting event is returned so the caller can tell past
// from future.
func (r *eventRepository) GetByRoomID(ctx context.Context, roomID string) (*domain.EventRecord, error) {
	query := `
		SELECT id, room_id, name, description, start_time, end_time
		FROM events
		WHERE room_id = $1
		ORDER BY (now() BETWEEN start_time AND end_time) DESC, start_time DESC
		LIMIT 1
	`
	e := &domain.EventRecord{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, strings.TrimSpace(roomID)).Scan(
		&e.ID, &e.RoomID, &e.Name, &descNull, &e.StartTime, &e.EndTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = descNull.String
	}
	return e, nil
}
