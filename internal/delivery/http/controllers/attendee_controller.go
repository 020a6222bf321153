package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// RegisterAttendeeRequest is the request body for POST /events/{event_id}/register.
type RegisterAttendeeRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Validate implements helpers.Validator.
func (a *RegisterAttendeeRequest) Validate() []string {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(a.Email)
	return nil
}

// AttendeeResponse is the AttendeeOut representation.
// swagger:model AttendeeResponse
type AttendeeResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newAttendeeResponse(a *domain.Attendee) AttendeeResponse {
	return AttendeeResponse{Name: a.Name, Email: a.Email}
}

// RegisterAttendeeSuccessResponse is the success response envelope for POST /events/{event_id}/register (201).
type RegisterAttendeeSuccessResponse struct {
	Data  AttendeeResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAttendeesSuccessResponse is the success response envelope for GET /events/{event_id}/attendees (200).
type ListAttendeesSuccessResponse struct {
	Data  []AttendeeResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterAttendee godoc
// @Summary Register an attendee for an event
// @Description Registers name and email for the event. Capacity is checked before duplicates, so a full event answers capacity_exceeded even for an already registered email.
// @Tags attendees
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param attendee body RegisterAttendeeRequest true "Attendee data"
// @Success 201 {object} controllers.RegisterAttendeeSuccessResponse "data contains the registered attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded or duplicate_registration"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{event_id}/register [post]
func (c *AttendeeController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.ParseIDPathValue(r, "event_id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee := domain.NewAttendee(eventID, req.Name, req.Email)
	if err := c.Service.RegisterAttendee(r.Context(), attendee); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newAttendeeResponse(attendee))
}

// ListAttendees godoc
// @Summary List attendees of an event
// @Description Returns a page of the event's attendees in registration order. An unknown event yields an empty list.
// @Tags attendees
// @Produce json
// @Param event_id path int true "Event ID"
// @Param skip query int false "Number of attendees to skip" default(0) minimum(0)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} controllers.ListAttendeesSuccessResponse "data contains the page of attendees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{event_id}/attendees [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.ParseIDPathValue(r, "event_id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	params, err := helpers.ParseOffsetPagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	attendees, err := c.Service.ListAttendees(r.Context(), eventID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]AttendeeResponse, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, newAttendeeResponse(a))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
