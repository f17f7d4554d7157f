package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/Mavapay/webhook-dispacther/dispatch"
	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
)

// Dispatcher is the engine surface the HTTP layer depends on.
type Dispatcher interface {
	Dispatch(ctx context.Context, event dispatch.Event) (dispatch.Result, error)
}

// Handlers sets up the dispatcher API routes
func Handlers(ctx context.Context, endpointService endpoint.UseCase, dispatcher Dispatcher, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("webhook-dispatcher", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	// Permissive CORS so the management UI can be served from anywhere.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Endpoint registry CRUD
	r.Method(http.MethodGet, "/endpoints", getEndpoints(endpointService))
	r.Method(http.MethodPost, "/endpoints", postEndpoints(endpointService))
	r.Method(http.MethodPut, "/endpoints/{id}/status", putEndpointStatus(endpointService))
	r.Method(http.MethodDelete, "/endpoints/{id}", deleteEndpoint(endpointService))

	// Inbound webhook fan-out
	r.Method(http.MethodPost, "/webhook", postWebhook(dispatcher))

	return r
}
