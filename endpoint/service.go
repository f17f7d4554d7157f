package endpoint

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for endpoint management
type UseCase interface {
	Register(ctx context.Context, name, rawURL string, isActive bool) (Endpoint, error)
	List(ctx context.Context) ([]Endpoint, error)
	ListActive(ctx context.Context) ([]Endpoint, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) (Endpoint, error)
	Delete(ctx context.Context, id string) error
}

// Snapshotter is the read-only view the dispatch engine depends on.
type Snapshotter interface {
	ListActive(ctx context.Context) ([]Endpoint, error)
}

type Service struct {
	Repo Repository
}

// NewService creates a new endpoint service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Register validates and stores a new endpoint, assigning it an id
func (s *Service) Register(ctx context.Context, name, rawURL string, isActive bool) (Endpoint, error) {
	if strings.TrimSpace(name) == "" {
		return Endpoint{}, &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Endpoint{}, &ValidationError{Field: "url", Reason: err.Error()}
	}
	if !u.IsAbs() || u.Host == "" {
		return Endpoint{}, &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}

	e := Endpoint{
		ID:       uuid.New().String(),
		Name:     name,
		URL:      rawURL,
		IsActive: isActive,
	}

	if err := s.Repo.Insert(ctx, e); err != nil {
		return Endpoint{}, fmt.Errorf("inserting endpoint: %w", err)
	}
	return e, nil
}

// List returns every registered endpoint
func (s *Service) List(ctx context.Context) ([]Endpoint, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting endpoints: %w", err)
	}
	return all, nil
}

/* ListActive returns the point-in-time snapshot used by a dispatch.
 * Mutations after this call do not affect a dispatch already in flight.
 */
func (s *Service) ListActive(ctx context.Context) ([]Endpoint, error) {
	active, err := s.Repo.SelectActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting active endpoints: %w", err)
	}
	return active, nil
}

// UpdateStatus toggles the active flag. Setting the same value twice is
// a no-op and still succeeds.
func (s *Service) UpdateStatus(ctx context.Context, id string, isActive bool) (Endpoint, error) {
	if err := s.Repo.UpdateStatus(ctx, id, isActive); err != nil {
		return Endpoint{}, fmt.Errorf("updating endpoint status: %w", err)
	}
	e, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Endpoint{}, fmt.Errorf("selecting endpoint: %w", err)
	}
	return e, nil
}

// Delete removes an endpoint; future snapshots no longer include it
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting endpoint: %w", err)
	}
	return nil
}
