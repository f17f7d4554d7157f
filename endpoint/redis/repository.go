package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of endpoint.Repository
 * Uses one Redis Hash per endpoint for the record itself
 * Uses a Redis List as the registration-order index, so listings and
 * dispatch snapshots keep a stable order across restarts
 */

const (
	hashPrefix = "endpoint"      // Hash naming: endpoint:{endpoint_id}
	indexKey   = "endpoints:ids" // List of endpoint ids in registration order
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// Insert stores the endpoint hash and appends its id to the index
func (r *Repository) Insert(ctx context.Context, e endpoint.Endpoint) error {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, e.ID)

	err := r.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":        e.ID,
		"name":      e.Name,
		"url":       e.URL,
		"is_active": boolToFlag(e.IsActive),
	}).Err()
	if err != nil {
		return fmt.Errorf("storing endpoint: %w", err)
	}

	if err := r.client.RPush(ctx, indexKey, e.ID).Err(); err != nil {
		return fmt.Errorf("indexing endpoint: %w", err)
	}

	return nil
}

// Select retrieves an endpoint by id
func (r *Repository) Select(ctx context.Context, id string) (endpoint.Endpoint, error) {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	data, err := r.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return endpoint.Endpoint{}, fmt.Errorf("getting endpoint: %w", err)
	}
	if len(data) == 0 {
		return endpoint.Endpoint{}, endpoint.ErrNotFound
	}

	return endpoint.Endpoint{
		ID:       data["id"],
		Name:     data["name"],
		URL:      data["url"],
		IsActive: data["is_active"] == "1",
	}, nil
}

// SelectAll returns every endpoint in registration order
func (r *Repository) SelectAll(ctx context.Context) ([]endpoint.Endpoint, error) {
	ids, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing endpoint ids: %w", err)
	}

	endpoints := make([]endpoint.Endpoint, 0, len(ids))
	for _, id := range ids {
		e, err := r.Select(ctx, id)
		if errors.Is(err, endpoint.ErrNotFound) {
			// Index and hash can drift if a delete is interrupted; skip.
			continue
		}
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, e)
	}

	return endpoints, nil
}

// SelectActive returns only the active endpoints, in registration order
func (r *Repository) SelectActive(ctx context.Context) ([]endpoint.Endpoint, error) {
	all, err := r.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]endpoint.Endpoint, 0, len(all))
	for _, e := range all {
		if e.IsActive {
			active = append(active, e)
		}
	}

	return active, nil
}

// UpdateStatus sets the active flag of an endpoint
func (r *Repository) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	exists, err := r.client.Exists(ctx, hashKey).Result()
	if err != nil {
		return fmt.Errorf("checking endpoint: %w", err)
	}
	if exists == 0 {
		return endpoint.ErrNotFound
	}

	err = r.client.HSet(ctx, hashKey, "is_active", boolToFlag(isActive)).Err()
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

// Delete removes the endpoint hash and its index entry
func (r *Repository) Delete(ctx context.Context, id string) error {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	deleted, err := r.client.Del(ctx, hashKey).Result()
	if err != nil {
		return fmt.Errorf("deleting endpoint: %w", err)
	}
	if deleted == 0 {
		return endpoint.ErrNotFound
	}

	if err := r.client.LRem(ctx, indexKey, 0, id).Err(); err != nil {
		return fmt.Errorf("removing endpoint from index: %w", err)
	}

	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
