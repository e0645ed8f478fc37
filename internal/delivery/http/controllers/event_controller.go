package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "meetinggate/internal/delivery/http/helpers"
	"meetinggate/internal/delivery/http/middleware"
	"meetinggate/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// GetDetails godoc
// @Summary Get event details for a room
// @Description Returns the event scheduled for the room, or JSON null when the room has no event.
// @Tags events
// @Produce json
// @Param roomId path string true "Room identifier"
// @Success 200 {object} domain.EventRecord "event, or null"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/details/{roomId} [get]
func (c *EventController) GetDetails(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")
	event, err := c.Service.GetDetails(r.Context(), roomID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to load event")
		return
	}
	if event == nil {
		h.WriteJSON(w, http.StatusOK, nil)
		return
	}
	h.WriteJSON(w, http.StatusOK, event)
}

// GetMeta godoc
// @Summary Get meeting details for a user in an event
// @Description Returns the meeting unique id assigned to the user for the event. A missing assignment yields an empty id and alerts the administrator. When a bearer token is sent its subject must match userId.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param eventId query string true "Event ID"
// @Success 200 {object} domain.MeetingDetails
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/meta [get]
func (c *EventController) GetMeta(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := strings.TrimSpace(q.Get("userId"))
	eventID := strings.TrimSpace(q.Get("eventId"))
	if userID == "" || eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "userId and eventId are required")
		return
	}
	if authID, ok := middleware.UserIDFromContext(r.Context()); ok && authID != userID {
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "token does not belong to userId")
		return
	}
	details, err := c.Service.GetMeta(r.Context(), userID, eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to load meeting details")
		return
	}
	h.WriteJSON(w, http.StatusOK, details)
}
