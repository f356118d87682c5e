package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mentorsurvey/internal/service"
	"mentorsurvey/internal/transport/rest/handler"
	"mentorsurvey/internal/transport/rest/middleware"
	"mentorsurvey/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	SurveyService *service.SurveyService
	IntakeService *service.IntakeService
	ReportService *service.ReportService
	WSHub         *ws.Hub
	HealthChecks  map[string]handler.Pinger
	Gatherer      prometheus.Gatherer
	CORSOrigins   []string
	Logger        *slog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, logger)
	sessionHandler := handler.NewSessionHandler(c.SurveyService, logger)
	intakeHandler := handler.NewIntakeHandler(c.IntakeService, logger)
	reportHandler := handler.NewReportHandler(c.ReportService, logger)
	healthHandler := handler.NewHealthHandler(c.HealthChecks)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, nil, logger)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(middleware.CORS(c.CORSOrigins))
	r.Use(middleware.RequestLogger(logger))

	// Mentor routes
	r.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/{id}/instances/{instance_id}", sessionHandler.GetInstance).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/{id}/instances/{instance_id}/answers", sessionHandler.SubmitAnswers).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{id}/submit", sessionHandler.Submit).Methods("POST", "OPTIONS")

	// Client routes
	r.HandleFunc("/client-intake", intakeHandler.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/client-intake/upload", intakeHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/client-intake/documents/{id}", intakeHandler.Document).Methods("GET", "OPTIONS")

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	r.HandleFunc("/ws/progress", wsHandler.Progress).Methods("GET")

	r.HandleFunc("/healthz", healthHandler.Health).Methods("GET")
	if c.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	// Director routes
	director := r.NewRoute().Subrouter()
	director.Use(authMW.RequireDirector)

	director.HandleFunc("/client-intake/latest", intakeHandler.Latest).Methods("GET", "OPTIONS")
	director.HandleFunc("/reports/teams/{team_key}", reportHandler.Team).Methods("GET", "OPTIONS")

	return r
}
