package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Mavapay/webhook-dispacther/dispatch"
)

// dispatchResponse represents the fan-out summary returned to the poster
type dispatchResponse struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Outcomes  []outcomeResponse `json:"outcomes"`
}

// outcomeResponse represents one per-endpoint delivery outcome
type outcomeResponse struct {
	EndpointID   string `json:"endpoint_id"`
	EndpointName string `json:"endpoint_name"`
	Success      bool   `json:"success"`
	HTTPStatus   int    `json:"http_status,omitempty"`
	Error        string `json:"error,omitempty"`
	LatencyMS    int64  `json:"latency_ms"`
}

/* postWebhook handles POST /webhook
 * Downstream failures never change the response status: the poster gets
 * a 200 with the counts. Only a malformed body (400) or a registry
 * fault (500) fail the inbound call.
 */
func postWebhook(dispatcher Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		defer r.Body.Close()

		if !json.Valid(body) {
			writeError(w, http.StatusBadRequest, "body must be valid JSON")
			return
		}

		// Forward inbound headers; the deliverer drops Host and friends.
		headers := make(map[string]string)
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		event := dispatch.Event{
			Payload:    body,
			Headers:    headers,
			ReceivedAt: time.Now(),
		}

		result, err := dispatcher.Dispatch(r.Context(), event)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		outcomes := make([]outcomeResponse, 0, len(result.Outcomes))
		for _, o := range result.Outcomes {
			outcomes = append(outcomes, outcomeResponse{
				EndpointID:   o.EndpointID,
				EndpointName: o.EndpointName,
				Success:      o.Success,
				HTTPStatus:   o.HTTPStatus,
				Error:        o.Error,
				LatencyMS:    o.Latency.Milliseconds(),
			})
		}

		writeJSON(w, http.StatusOK, dispatchResponse{
			Total:     result.Total,
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
			Outcomes:  outcomes,
		})
	})
}
