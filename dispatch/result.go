package dispatch

import "fmt"

/* Result aggregates the outcomes of one dispatch.
 * Invariant: Total == Succeeded + Failed == len(Outcomes).
 */
type Result struct {
	Total     int
	Succeeded int
	Failed    int
	// Outcomes follow the snapshot order, not completion order.
	Outcomes []Outcome
}

/* Aggregate merges per-endpoint outcomes into a Result.
 * Pure function: it counts and preserves the order it was given,
 * no network or registry access.
 */
func Aggregate(outcomes []Outcome) Result {
	r := Result{
		Total:    len(outcomes),
		Outcomes: outcomes,
	}
	for _, o := range outcomes {
		if o.Success {
			r.Succeeded++
		} else {
			r.Failed++
		}
	}
	return r
}

// Summary returns a log-friendly one-line description of the result.
func (r Result) Summary() string {
	return fmt.Sprintf("dispatched to %d endpoint(s): %d succeeded, %d failed", r.Total, r.Succeeded, r.Failed)
}
