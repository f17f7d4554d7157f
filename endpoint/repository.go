package endpoint

import (
	"context"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for endpoints
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Select(ctx context.Context, id string) (Endpoint, error)
	SelectAll(ctx context.Context) ([]Endpoint, error)
	/* SelectActive returns only endpoints with IsActive set.
	 * The dispatch engine reads its snapshot through this method and
	 * never touches the underlying collection.
	 */
	SelectActive(ctx context.Context) ([]Endpoint, error)
}

// Writer provides write operations for endpoints
type Writer interface {
	Insert(ctx context.Context, e Endpoint) error
	// UpdateStatus flips the active flag; ErrNotFound when id is unknown.
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	// Delete removes the endpoint; ErrNotFound when id is unknown.
	Delete(ctx context.Context, id string) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
