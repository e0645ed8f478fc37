package services

import (
	"context"
	"fmt"
	"log"

	"meetinggate/internal/domain"
)

type alertService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewAlertService returns an AlertService that uses the given Mailer and template renderer.
func NewAlertService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.AlertService {
	return &alertService{mailer: mailer, renderer: renderer}
}

// SendMissingMeetingAlert tells the administrator that a user could not get
// join details, using the "missing_meeting" template.
func (s *alertService) SendMissingMeetingAlert(ctx context.Context, data *domain.MissingMeetingAlertData) error {
	if data == nil {
		return fmt.Errorf("missing meeting alert data is nil")
	}
	if data.AdminEmail == "" {
		return fmt.Errorf("administrator email is not configured")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("missing_meeting", data)
	if err != nil {
		return fmt.Errorf("failed to render missing_meeting template: %w", err)
	}
	if err := s.mailer.Send(data.AdminEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send missing meeting alert: %w", err)
	}
	log.Printf("[EMAIL] Missing meeting alert sent to %s for event %s", data.AdminEmail, data.EventID)
	return nil
}
