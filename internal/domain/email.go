package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// MissingMeetingAlertData holds data for the administrator alert sent when a
// user has no meeting unique id for an event.
type MissingMeetingAlertData struct {
	AdminEmail string
	UserID     string
	Username   string
	EventID    string
}

// AlertService defines the contract for notifying administrators.
type AlertService interface {
	SendMissingMeetingAlert(ctx context.Context, data *MissingMeetingAlertData) error
}
