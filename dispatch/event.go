package dispatch

import "time"

/* Event represents one inbound webhook for the duration of a single
 * dispatch. It is never persisted.
 * Uses value semantics as it represents data, not behavior.
 */
type Event struct {
	// Payload is the JSON body exactly as received; it is forwarded
	// verbatim, the engine performs no validation of its content.
	Payload []byte

	// Headers are the inbound request headers selected for forwarding.
	// Host and hop-by-hop headers are dropped by the deliverer.
	Headers map[string]string

	ReceivedAt time.Time
}
