package services

import (
	"time"

	"meetinggate/internal/domain"
)

// TemporalGate decides whether now falls inside an event's active window.
// A disabled gate lets every event through.
type TemporalGate struct {
	Enabled bool
}

// Check returns ErrEventInPast when now is after the event end and
// ErrEventInFuture when now is before its start. Both bounds are inclusive.
func (g TemporalGate) Check(now time.Time, ev *domain.EventRecord) error {
	if !g.Enabled || ev == nil {
		return nil
	}
	if !ev.EndTime.IsZero() && ev.EndTime.Before(now) {
		return domain.ErrEventInPast
	}
	if !ev.StartTime.IsZero() && ev.StartTime.After(now) {
		return domain.ErrEventInFuture
	}
	return nil
}
