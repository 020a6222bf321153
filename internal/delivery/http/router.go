package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
)

// RouterConfig carries everything NewRouter wires onto the mux.
type RouterConfig struct {
	ModuleName         string
	EventController    *controllers.EventController
	AttendeeController *controllers.AttendeeController
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	api := "/api/" + cfg.ModuleName

	mux.HandleFunc("GET "+api+"/healthcheck", controllers.Healthcheck)

	// Events
	mux.HandleFunc("POST "+api+"/events", cfg.EventController.CreateEvent)
	mux.HandleFunc("GET "+api+"/events", cfg.EventController.ListUpcomingEvents)

	// Attendees
	mux.HandleFunc("POST /events/{event_id}/register", cfg.AttendeeController.RegisterAttendee)
	mux.HandleFunc("GET /events/{event_id}/attendees", cfg.AttendeeController.ListAttendees)

	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// HandlerConfig selects the middleware wrapped around the router.
type HandlerConfig struct {
	Logger         *slog.Logger
	EnableCORS     bool
	CORSOrigins    []string
	MetricsWrapper func(http.Handler) http.Handler
}

// NewHandler wraps mux in recovery, request id, logging, metrics and CORS, outermost first.
func NewHandler(mux http.Handler, cfg HandlerConfig) http.Handler {
	var h http.Handler = mux
	if cfg.EnableCORS {
		h = middleware.CORS(cfg.CORSOrigins, h)
	}
	if cfg.MetricsWrapper != nil {
		h = cfg.MetricsWrapper(h)
	}
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	h = middleware.RequestID(h)
	return middleware.Recovery(cfg.Logger, h)
}
