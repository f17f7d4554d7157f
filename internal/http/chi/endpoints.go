package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/go-chi/chi/v5"
)

/* HTTP layer DTOs for the registry API
 * Separate from domain entities to avoid leaking internal structure
 */

// endpointResponse represents an endpoint in the API
type endpointResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

// createEndpointRequest represents the registration payload
type createEndpointRequest struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// statusUpdateRequest represents the PUT /endpoints/{id}/status payload
type statusUpdateRequest struct {
	IsActive bool `json:"is_active"`
}

// errorResponse is the uniform error body for 4xx/5xx
type errorResponse struct {
	Error string `json:"error"`
}

func toEndpointResponses(endpoints []endpoint.Endpoint) []endpointResponse {
	out := make([]endpointResponse, 0, len(endpoints))
	for _, e := range endpoints {
		out = append(out, endpointResponse{
			ID:       e.ID,
			Name:     e.Name,
			URL:      e.URL,
			IsActive: e.IsActive,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// getEndpoints handles GET /endpoints
func getEndpoints(endpointService endpoint.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := endpointService.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toEndpointResponses(all))
	})
}

// postEndpoints handles POST /endpoints
func postEndpoints(endpointService endpoint.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createEndpointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		_, err := endpointService.Register(r.Context(), req.Name, req.URL, req.IsActive)
		if err != nil {
			if endpoint.IsValidation(err) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		all, err := endpointService.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, toEndpointResponses(all))
	})
}

// putEndpointStatus handles PUT /endpoints/{id}/status
func putEndpointStatus(endpointService endpoint.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req statusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		e, err := endpointService.UpdateStatus(r.Context(), id, req.IsActive)
		if err != nil {
			if errors.Is(err, endpoint.ErrNotFound) {
				writeError(w, http.StatusNotFound, "endpoint not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, endpointResponse{
			ID:       e.ID,
			Name:     e.Name,
			URL:      e.URL,
			IsActive: e.IsActive,
		})
	})
}

// deleteEndpoint handles DELETE /endpoints/{id}
func deleteEndpoint(endpointService endpoint.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := endpointService.Delete(r.Context(), id); err != nil {
			if errors.Is(err, endpoint.ErrNotFound) {
				writeError(w, http.StatusNotFound, "endpoint not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		all, err := endpointService.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toEndpointResponses(all))
	})
}
