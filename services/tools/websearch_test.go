package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSearchTool_NotConfigured(t *testing.T) {
	tool := NewWebSearchTool("")
	assert.False(t, tool.Configured())

	_, err := tool.Invoke(context.Background(), "ml engineer salary")
	assert.ErrorIs(t, err, ErrToolNotConfigured)
}

func TestWebSearchTool_EmptyQuery(t *testing.T) {
	_, err := NewWebSearchTool("key").Invoke(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestWebSearchTool_Invoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "brave-key", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "ml engineer skills", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("count"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web": {"results": [
			{"title": "ML Engineer Roadmap", "url": "https://example.com/a", "description": "Skills you need"},
			{"title": "MLOps Guide", "url": "https://example.com/b", "description": "Deploying models"},
			{"title": "Extra", "url": "https://example.com/c", "description": "ignored"}
		]}}`))
	}))
	defer srv.Close()

	tool := NewWebSearchTool("brave-key", WithSearchEndpoint(srv.URL), WithResultCount(2))
	out, err := tool.Invoke(context.Background(), "ml engineer skills")
	require.NoError(t, err)

	assert.Contains(t, out, "1. ML Engineer Roadmap")
	assert.Contains(t, out, "URL: https://example.com/b")
	assert.NotContains(t, out, "Extra")
}

func TestWebSearchTool_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web": {"results": []}}`))
	}))
	defer srv.Close()

	out, err := NewWebSearchTool("k", WithSearchEndpoint(srv.URL)).Invoke(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Equal(t, "No results found.", out)
}

func TestWebSearchTool_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewWebSearchTool("bad", WithSearchEndpoint(srv.URL)).Invoke(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
