package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/Mavapay/webhook-dispacther/endpoint/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEndpoints(t *testing.T) {
	ctx := context.Background()
	s := mocks.NewUseCase(t)
	endpoints := []endpoint.Endpoint{
		{ID: "a", Name: "Fincra Staging", URL: "https://staging.example.com/webhook/fincra", IsActive: true},
		{ID: "b", Name: "Splice Staging", URL: "https://staging.example.com/webhook/splice", IsActive: false},
	}
	s.On("List", mock.Anything).Return(endpoints, nil)

	h := Handlers(ctx, s, nil, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/endpoints", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var results []endpointResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.True(t, results[0].IsActive)
	assert.False(t, results[1].IsActive)
}

func TestPostEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		registered := endpoint.Endpoint{ID: "new-id", Name: "A", URL: "https://a.example.com", IsActive: true}
		s.On("Register", mock.Anything, "A", "https://a.example.com", true).Return(registered, nil)
		s.On("List", mock.Anything).Return([]endpoint.Endpoint{registered}, nil)

		body := bytes.NewBufferString(`{"name":"A","url":"https://a.example.com","is_active":true}`)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/endpoints", body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var results []endpointResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "new-id", results[0].ID)
	})

	t.Run("validation failure", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Register", mock.Anything, "", "https://a.example.com", false).
			Return(endpoint.Endpoint{}, &endpoint.ValidationError{Field: "name", Reason: "cannot be empty"})

		body := bytes.NewBufferString(`{"name":"","url":"https://a.example.com"}`)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/endpoints", body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "name")
	})

	t.Run("malformed body", func(t *testing.T) {
		s := mocks.NewUseCase(t)

		body := bytes.NewBufferString(`{not json`)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/endpoints", body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPutEndpointStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("UpdateStatus", mock.Anything, "ep-1", false).
			Return(endpoint.Endpoint{ID: "ep-1", Name: "A", URL: "https://a.example.com", IsActive: false}, nil)

		body := bytes.NewBufferString(`{"is_active":false}`)
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, "/endpoints/ep-1/status", body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp endpointResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsActive)
	})

	t.Run("unknown id", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("UpdateStatus", mock.Anything, "missing", true).
			Return(endpoint.Endpoint{}, endpoint.ErrNotFound)

		body := bytes.NewBufferString(`{"is_active":true}`)
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, "/endpoints/missing/status", body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Delete", mock.Anything, "ep-1").Return(nil)
		s.On("List", mock.Anything).Return([]endpoint.Endpoint{}, nil)

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "/endpoints/ep-1", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var results []endpointResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		assert.Empty(t, results)
	})

	t.Run("unknown id", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Delete", mock.Anything, "missing").Return(endpoint.ErrNotFound)

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "/endpoints/missing", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		Handlers(ctx, s, nil, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
