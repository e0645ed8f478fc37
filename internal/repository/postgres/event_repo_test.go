package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"meetinggate/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_GetByRoomID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	cols := []string{"id", "room_id", "name", "description", "start_time", "end_time"}

	tests := []struct {
		name    string
		roomID  string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.EventRecord
		errIs   error
		wantErr bool
	}{
		{
			name:   "found",
			roomID: " team-standup ",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, room_id, name, description, start_time, end_time\s+FROM events\s+WHERE room_id = \$1`).
					WithArgs("team-standup").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("ev-1", "team-standup", "Standup", "daily", start, end))
			},
			want: &domain.EventRecord{ID: "ev-1", RoomID: "team-standup", Name: "Standup", Description: "daily", StartTime: start, EndTime: end},
		},
		{
			name:   "running event ranks before later ones",
			roomID: "r1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE room_id = \$1\s+ORDER BY \(now\(\) BETWEEN start_time AND end_time\) DESC, start_time DESC\s+LIMIT 1`).
					WithArgs("r1").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("ev-live", "r1", "Live", nil, start, end))
			},
			want: &domain.EventRecord{ID: "ev-live", RoomID: "r1", Name: "Live", StartTime: start, EndTime: end},
		},
		{
			name:   "null description",
			roomID: "r1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WithArgs("r1").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("ev-2", "r1", "Review", nil, start, end))
			},
			want: &domain.EventRecord{ID: "ev-2", RoomID: "r1", Name: "Review", StartTime: start, EndTime: end},
		},
		{
			name:   "not found",
			roomID: "nope",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).WithArgs("nope").WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name:   "db error",
			roomID: "r1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).WithArgs("r1").WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(db).GetByRoomID(ctx, tt.roomID)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMeetingRepository_GetMeetingUniqueID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		mock  func(mock sqlmock.Sqlmock)
		want  string
		errIs error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT meeting_unique_id\s+FROM event_meta\s+WHERE user_id = \$1 AND event_id = \$2`).
					WithArgs("u1", "e1").
					WillReturnRows(sqlmock.NewRows([]string{"meeting_unique_id"}).AddRow("m-123"))
			},
			want: "m-123",
		},
		{
			name: "null id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM event_meta`).
					WithArgs("u1", "e1").
					WillReturnRows(sqlmock.NewRows([]string{"meeting_unique_id"}).AddRow(nil))
			},
			errIs: domain.ErrNotFound,
		},
		{
			name: "no row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM event_meta`).WithArgs("u1", "e1").WillReturnError(sql.ErrNoRows)
			},
			errIs: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM event_meta`).WithArgs("u1", "e1").WillReturnError(sql.ErrConnDone)
			},
			errIs: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewMeetingRepository(db).GetMeetingUniqueID(ctx, "u1", "e1")
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(sql.ErrConnDone)
	require.ErrorIs(t, Migrate(context.Background(), db), sql.ErrConnDone)

	require.NoError(t, mock.ExpectationsWereMet())
}
