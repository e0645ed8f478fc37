// Package conference hands a validated join off to the conferencing system.
package conference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"meetinggate/internal/domain"
)

// Joiner resolves the conference URL for a ticket and writes it to out.
type Joiner struct {
	base   *url.URL
	out    io.Writer
	logger *slog.Logger
}

// NewJoiner returns a Joiner for the conference deployment at baseURL.
func NewJoiner(baseURL string, out io.Writer, logger *slog.Logger) (*Joiner, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse conference url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("conference url %q must be absolute", baseURL)
	}
	return &Joiner{base: u, out: out, logger: logger}, nil
}

// URL returns the address of the conference room for the ticket.
func (j *Joiner) URL(ticket domain.JoinTicket) (string, error) {
	if ticket.RoomID == "" {
		return "", errors.New("join ticket has no room")
	}
	u := j.base.JoinPath(url.PathEscape(ticket.RoomID))
	if ticket.MeetingUniqueID != "" {
		q := u.Query()
		q.Set("meetingUniqueId", ticket.MeetingUniqueID)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Join implements domain.Joiner.
func (j *Joiner) Join(ctx context.Context, ticket domain.JoinTicket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := j.URL(ticket)
	if err != nil {
		return err
	}
	j.logger.Info("joining conference",
		"room", ticket.RoomID,
		"event_id", ticket.EventID,
		"user_id", ticket.UserID,
		"has_meeting_id", ticket.MeetingUniqueID != "")
	if _, err := fmt.Fprintln(j.out, target); err != nil {
		return fmt.Errorf("write conference url: %w", err)
	}
	return nil
}
