package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/rs/zerolog"
)

/* Engine fans one event out to every active endpoint.
 * Uses pointer semantics as it's an API, not data.
 */

// Recorder receives dispatch measurements; the metrics package provides
// the OpenTelemetry implementation.
type Recorder interface {
	RecordDispatch(ctx context.Context, result Result, elapsed time.Duration)
}

// NopRecorder discards all measurements. Used in tests.
type NopRecorder struct{}

func (NopRecorder) RecordDispatch(ctx context.Context, result Result, elapsed time.Duration) {}

type Engine struct {
	registry  endpoint.Snapshotter
	deliverer Deliverer
	timeout   time.Duration
	logger    zerolog.Logger
	recorder  Recorder
}

// NewEngine creates a dispatch engine. A nil recorder disables metrics.
func NewEngine(registry endpoint.Snapshotter, deliverer Deliverer, timeout time.Duration, logger zerolog.Logger, recorder Recorder) *Engine {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Engine{
		registry:  registry,
		deliverer: deliverer,
		timeout:   timeout,
		logger:    logger,
		recorder:  recorder,
	}
}

/* Dispatch delivers the event to a point-in-time snapshot of active
 * endpoints, concurrently and without short-circuiting: a fast failure
 * on one endpoint never cancels the others. The only error it can
 * return is a registry fault; delivery failures live in the Result.
 */
func (e *Engine) Dispatch(ctx context.Context, event Event) (Result, error) {
	start := time.Now()

	// One snapshot per dispatch. Endpoints added, disabled or deleted
	// after this point only affect future dispatches.
	snapshot, err := e.registry.ListActive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing active endpoints: %w", err)
	}

	if len(snapshot) == 0 {
		e.logger.Debug().Msg("no active endpoints, nothing to dispatch")
		result := Aggregate(nil)
		e.recorder.RecordDispatch(ctx, result, time.Since(start))
		return result, nil
	}

	/* A dispatch runs to completion of all attempts or their individual
	 * timeouts: the inbound caller disconnecting must not cancel
	 * in-flight deliveries, so attempts are detached from the inbound
	 * context and bounded only by the per-attempt timeout.
	 */
	attemptCtx := context.WithoutCancel(ctx)

	/* Each goroutine writes only its own slot, so the slice needs no
	 * lock and the outcomes keep the snapshot order regardless of
	 * completion order.
	 */
	outcomes := make([]Outcome, len(snapshot))
	var wg sync.WaitGroup
	for i, ep := range snapshot {
		wg.Add(1)
		go func(i int, ep endpoint.Endpoint) {
			defer wg.Done()
			outcomes[i] = e.deliverer.Deliver(attemptCtx, ep, event, e.timeout)
		}(i, ep)
	}
	wg.Wait()

	result := Aggregate(outcomes)
	elapsed := time.Since(start)

	e.logger.Info().
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("elapsed", elapsed).
		Msg(result.Summary())

	e.recorder.RecordDispatch(ctx, result, elapsed)

	return result, nil
}
