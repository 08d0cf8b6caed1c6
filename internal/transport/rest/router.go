package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"asdscreen/internal/service"
	"asdscreen/internal/transport/rest/handler"
	"asdscreen/internal/transport/rest/middleware"
	"asdscreen/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	ScreeningService *service.ScreeningService
	ReportService    *service.ReportService
	StatsService     *service.StatsService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	screeningHandler := handler.NewScreeningHandler(c.ScreeningService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	statsHandler := handler.NewStatsHandler(c.StatsService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes: the screening form itself needs no account
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questionnaire", screeningHandler.Questionnaire).Methods("GET", "OPTIONS")
	v1.HandleFunc("/screenings", screeningHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/screenings/{id}", screeningHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/reports/{screeningId}", reportHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/monitor", wsHandler.MonitorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Clinician routes (require auth)
	clinicianRoutes := v1.NewRoute().Subrouter()
	clinicianRoutes.Use(authMW.RequireClinician)

	clinicianRoutes.HandleFunc("/screenings", screeningHandler.List).Methods("GET", "OPTIONS")
	clinicianRoutes.HandleFunc("/stats/distribution", statsHandler.Distribution).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
