package endpoint

/* Endpoint represents a registered webhook destination in relation to the
 * business. No tags here: the HTTP layer has its own DTOs.
 * Uses value semantics as it represents data, not behavior.
 */
type Endpoint struct {
	ID       string
	Name     string
	URL      string
	IsActive bool
}
