package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// CreateEventRequest is the request body for POST /api/{module}/events.
type CreateEventRequest struct {
	Name        string    `json:"name" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required" example:"2030-06-01T09:00:00+05:30"`
	EndTime     time.Time `json:"end_time" validate:"required" example:"2030-06-01T11:00:00+05:30"`
	MaxCapacity int       `json:"max_capacity" validate:"gte=1"`
}

// Validate implements helpers.Validator.
func (c *CreateEventRequest) Validate() []string {
	c.Name = strings.TrimSpace(c.Name)
	c.Location = strings.TrimSpace(c.Location)
	if !c.StartTime.IsZero() && !c.EndTime.IsZero() && !c.EndTime.After(c.StartTime) {
		return []string{"end_time must be after start_time"}
	}
	return nil
}

// EventResponse is the EventOut representation.
// swagger:model EventResponse
type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MaxCapacity int       `json:"max_capacity"`
}

func newEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Location:    e.Location,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		MaxCapacity: e.MaxCapacity,
	}
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []EventResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

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

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event with a fixed attendee capacity. Timestamps are RFC 3339 with an offset; end_time must be after start_time.
// @Tags events
// @Accept json
// @Produce json
// @Param module path string true "Module name"
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/{module}/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Name, req.Location, req.StartTime, req.EndTime, req.MaxCapacity)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(event))
}

// ListUpcomingEvents godoc
// @Summary List upcoming events
// @Description Returns events whose start_time is at or after now, ordered by start_time then id. Unpaginated unless limit is given.
// @Tags events
// @Produce json
// @Param module path string true "Module name"
// @Param skip query int false "Number of events to skip" minimum(0)
// @Param limit query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the upcoming events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/{module}/events [get]
func (c *EventController) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	params, err := helpers.ParseOptionalOffsetPagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.ListUpcomingEvents(r.Context(), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(e))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
