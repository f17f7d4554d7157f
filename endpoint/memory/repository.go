package memory

import (
	"context"
	"sync"

	"github.com/Mavapay/webhook-dispacther/endpoint"
)

/* In-memory implementation of endpoint.Repository
 * A single mutex guards the slice; insertion order is preserved so
 * listings and dispatch snapshots are deterministic.
 * Used for dev mode and unit tests; the Redis repository is the
 * durable option.
 */

type Repository struct {
	mu        sync.RWMutex
	endpoints []endpoint.Endpoint
}

// NewRepository creates an empty in-memory repository
func NewRepository() *Repository {
	return &Repository{}
}

// Insert adds an endpoint to the collection
func (r *Repository) Insert(ctx context.Context, e endpoint.Endpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints = append(r.endpoints, e)
	return nil
}

// Select returns one endpoint by id
func (r *Repository) Select(ctx context.Context, id string) (endpoint.Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.endpoints {
		if e.ID == id {
			return e, nil
		}
	}
	return endpoint.Endpoint{}, endpoint.ErrNotFound
}

// SelectAll returns every endpoint in insertion order
func (r *Repository) SelectAll(ctx context.Context) ([]endpoint.Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]endpoint.Endpoint, len(r.endpoints))
	copy(all, r.endpoints)
	return all, nil
}

/* SelectActive returns a copy, so a dispatch holding the snapshot is not
 * affected by later mutations of the collection.
 */
func (r *Repository) SelectActive(ctx context.Context) ([]endpoint.Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	active := make([]endpoint.Endpoint, 0, len(r.endpoints))
	for _, e := range r.endpoints {
		if e.IsActive {
			active = append(active, e)
		}
	}
	return active, nil
}

// UpdateStatus flips the active flag for one endpoint
func (r *Repository) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.endpoints {
		if r.endpoints[i].ID == id {
			r.endpoints[i].IsActive = isActive
			return nil
		}
	}
	return endpoint.ErrNotFound
}

// Delete removes one endpoint
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.endpoints {
		if r.endpoints[i].ID == id {
			r.endpoints = append(r.endpoints[:i], r.endpoints[i+1:]...)
			return nil
		}
	}
	return endpoint.ErrNotFound
}

// Close is a no-op for the in-memory repository
func (r *Repository) Close(ctx context.Context) error {
	return nil
}
