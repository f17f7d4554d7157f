package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/rs/zerolog"
)

// Deliverer performs one delivery attempt against one endpoint.
type Deliverer interface {
	/* Deliver never returns an error: every failure mode is captured
	 * inside the Outcome. This is what isolates a malfunctioning
	 * endpoint from its siblings.
	 */
	Deliver(ctx context.Context, e endpoint.Endpoint, event Event, timeout time.Duration) Outcome
}

// HTTPDeliverer posts the event body to the endpoint URL.
type HTTPDeliverer struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPDeliverer creates a deliverer with a shared HTTP client.
// Per-attempt deadlines come from the context, not from the client.
func NewHTTPDeliverer(logger zerolog.Logger) *HTTPDeliverer {
	return &HTTPDeliverer{
		client: &http.Client{},
		logger: logger,
	}
}

// Deliver sends exactly one POST; no retries happen at this level.
func (d *HTTPDeliverer) Deliver(ctx context.Context, e endpoint.Endpoint, event Event, timeout time.Duration) Outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, e.URL, bytes.NewReader(event.Payload))
	if err != nil {
		return d.failure(e, ErrorOther, 0, time.Since(start))
	}

	req.Header.Set("Content-Type", "application/json")
	for name, value := range event.Headers {
		if skipHeader(name) {
			continue
		}
		req.Header.Set(name, value)
	}

	resp, err := d.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return d.failure(e, classify(err), 0, latency)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return d.failure(e, fmt.Sprintf("http_error:%d", resp.StatusCode), resp.StatusCode, latency)
	}

	d.logger.Info().
		Str("endpoint_id", e.ID).
		Str("endpoint_name", e.Name).
		Int("status", resp.StatusCode).
		Dur("latency", latency).
		Msg("delivery succeeded")

	return Outcome{
		EndpointID:   e.ID,
		EndpointName: e.Name,
		Success:      true,
		HTTPStatus:   resp.StatusCode,
		Latency:      latency,
	}
}

func (d *HTTPDeliverer) failure(e endpoint.Endpoint, class string, status int, latency time.Duration) Outcome {
	d.logger.Warn().
		Str("endpoint_id", e.ID).
		Str("endpoint_name", e.Name).
		Str("error", class).
		Dur("latency", latency).
		Msg("delivery failed")

	return Outcome{
		EndpointID:   e.ID,
		EndpointName: e.Name,
		Success:      false,
		HTTPStatus:   status,
		Error:        class,
		Latency:      latency,
	}
}

// classify maps a transport error to one of the outcome error classes.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrorConnection
	}
	return ErrorOther
}

/* skipHeader filters headers that must not be replayed to the
 * destination: Host would misdirect the request, the others are
 * owned by the outbound transport.
 */
func skipHeader(name string) bool {
	switch strings.ToLower(name) {
	case "host", "content-length", "content-type", "connection", "accept-encoding", "transfer-encoding":
		return true
	}
	return false
}
