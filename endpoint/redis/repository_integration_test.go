//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Insert_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and retrieve endpoint", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		e := endpoint.Endpoint{
			ID:       "test-endpoint-1",
			Name:     "Fincra Staging",
			URL:      "https://staging.example.com/webhook/fincra",
			IsActive: true,
		}

		require.NoError(t, repo.Insert(ctx, e))

		retrieved, err := repo.Select(ctx, e.ID)
		require.NoError(t, err)

		assert.Equal(t, e.ID, retrieved.ID)
		assert.Equal(t, e.Name, retrieved.Name)
		assert.Equal(t, e.URL, retrieved.URL)
		assert.True(t, retrieved.IsActive)
	})

	t.Run("select all preserves registration order", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		for _, e := range []endpoint.Endpoint{
			{ID: "a", Name: "A", URL: "https://a.example.com", IsActive: true},
			{ID: "b", Name: "B", URL: "https://b.example.com", IsActive: false},
			{ID: "c", Name: "C", URL: "https://c.example.com", IsActive: true},
		} {
			require.NoError(t, repo.Insert(ctx, e))
		}

		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "a", all[0].ID)
		assert.Equal(t, "b", all[1].ID)
		assert.Equal(t, "c", all[2].ID)

		active, err := repo.SelectActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "a", active[0].ID)
		assert.Equal(t, "c", active[1].ID)
	})
}

func TestRepository_UpdateStatus_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle active flag", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		e := endpoint.Endpoint{ID: "toggle-me", Name: "T", URL: "https://t.example.com", IsActive: true}
		require.NoError(t, repo.Insert(ctx, e))

		require.NoError(t, repo.UpdateStatus(ctx, e.ID, false))

		retrieved, err := repo.Select(ctx, e.ID)
		require.NoError(t, err)
		assert.False(t, retrieved.IsActive)

		// Same value twice is still a success.
		require.NoError(t, repo.UpdateStatus(ctx, e.ID, false))
	})

	t.Run("unknown id", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		err := repo.UpdateStatus(ctx, "missing", true)
		assert.ErrorIs(t, err, endpoint.ErrNotFound)
	})
}

func TestRepository_Delete_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes record and index entry", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		e := endpoint.Endpoint{ID: "delete-me", Name: "D", URL: "https://d.example.com", IsActive: true}
		require.NoError(t, repo.Insert(ctx, e))

		require.NoError(t, repo.Delete(ctx, e.ID))

		_, err := repo.Select(ctx, e.ID)
		assert.ErrorIs(t, err, endpoint.ErrNotFound)

		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("unknown id", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		err := repo.Delete(ctx, "missing")
		assert.ErrorIs(t, err, endpoint.ErrNotFound)
	})
}
