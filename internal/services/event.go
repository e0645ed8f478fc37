package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"meetinggate/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	meetingRepo    domain.MeetingRepository
	userRepo       domain.UserRepository
	alerts         domain.AlertService
	adminEmail     string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates the backend EventService. alerts may be nil, in
// which case missing meeting ids are only logged.
func NewEventService(eventRepo domain.EventRepository,
	meetingRepo domain.MeetingRepository,
	userRepo domain.UserRepository,
	alerts domain.AlertService,
	adminEmail string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:      eventRepo,
		meetingRepo:    meetingRepo,
		userRepo:       userRepo,
		alerts:         alerts,
		adminEmail:     strings.TrimSpace(adminEmail),
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) GetDetails(ctx context.Context, roomID string) (*domain.EventRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, nil
	}
	event, err := s.eventRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event by room: %w", err)
	}
	return event, nil
}

func (s *eventService) GetMeta(ctx context.Context, userID, eventID string) (*domain.MeetingDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	userID = strings.TrimSpace(userID)
	eventID = strings.TrimSpace(eventID)
	if userID == "" || eventID == "" {
		return nil, fmt.Errorf("userId and eventId are required")
	}

	id, err := s.meetingRepo.GetMeetingUniqueID(ctx, userID, eventID)
	if err == nil {
		return &domain.MeetingDetails{MeetingUniqueID: id}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get meeting unique id: %w", err)
	}

	s.logger.WarnContext(ctx, "no meeting unique id", "user_id", userID, "event_id", eventID)
	s.alertMissingMeeting(ctx, userID, eventID)
	return &domain.MeetingDetails{}, nil
}

// alertMissingMeeting emails the administrator. Failures are logged and do
// not affect the response.
func (s *eventService) alertMissingMeeting(ctx context.Context, userID, eventID string) {
	if s.alerts == nil || s.adminEmail == "" {
		return
	}
	data := &domain.MissingMeetingAlertData{
		AdminEmail: s.adminEmail,
		UserID:     userID,
		EventID:    eventID,
	}
	if s.userRepo != nil {
		if u, err := s.userRepo.GetByID(ctx, userID); err == nil {
			data.Username = u.Username
		}
	}
	if err := s.alerts.SendMissingMeetingAlert(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to alert administrator", "user_id", userID, "event_id", eventID, "err", err)
	}
}
