package controllers

import (
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
)

// HealthResponse is the liveness probe body. It is not wrapped in the API envelope.
type HealthResponse struct {
	Status int `json:"status" example:"200"`
}

// Healthcheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Param module path string true "Module name"
// @Success 200 {object} controllers.HealthResponse
// @Router /api/{module}/healthcheck [get]
func Healthcheck(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{Status: http.StatusOK})
}
