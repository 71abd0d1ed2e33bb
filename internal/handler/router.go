package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kaufy/projection-engine/pkg/response"
)

type Handlers struct {
	Health     *HealthHandler
	Projection *ProjectionHandler
	Portfolio  *PortfolioHandler
	Investment *InvestmentHandler
}

// NewRouter wires every route and the shared middlewares
func NewRouter(h Handlers, limiter *response.RateLimiter, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger), response.CORSMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods("GET")
	router.HandleFunc("/health/ready", h.Health.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(limiter.Middleware)

	api.HandleFunc("/projections", h.Projection.Project).Methods("POST", "OPTIONS")
	api.HandleFunc("/projections/combine", h.Projection.Combine).Methods("POST", "OPTIONS")
	api.HandleFunc("/tenants/{tenantId}/portfolio", h.Portfolio.Summary).Methods("GET", "OPTIONS")
	api.HandleFunc("/investments/calculate", h.Investment.Calculate).Methods("POST", "OPTIONS")

	return router
}
