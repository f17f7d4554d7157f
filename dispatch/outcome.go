package dispatch

import "time"

/* Error classifications recorded in an Outcome. A failed delivery is
 * data, not an error value: nothing here ever propagates to the caller
 * of Dispatch.
 */
const (
	ErrorTimeout    = "timeout"
	ErrorConnection = "connection_error"
	ErrorOther      = "other"
)

// Outcome records the result of one delivery attempt to one endpoint.
// Immutable after creation.
type Outcome struct {
	EndpointID   string
	EndpointName string
	Success      bool
	// HTTPStatus is zero when no response was received.
	HTTPStatus int
	// Error is empty on success, otherwise one of the classifications
	// above or "http_error:<code>".
	Error   string
	Latency time.Duration
}
