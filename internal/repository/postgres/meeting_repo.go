package postgres

import (
	"context"
	"database/sql"
	"errors"

	"meetinggate/internal/domain"
)

type meetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) domain.MeetingRepository {
	return &meetingRepository{DB: db}
}

func (r *meetingRepository) GetMeetingUniqueID(ctx context.Context, userID, eventID string) (string, error) {
	query := `
		SELECT meeting_unique_id
		FROM event_meta
		WHERE user_id = $1 AND event_id = $2
	`
	var id sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID, eventID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if !id.Valid || id.String == "" {
		return "", domain.ErrNotFound
	}
	return id.String, nil
}
