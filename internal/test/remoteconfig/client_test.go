package remoteconfig_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/38tter/beer-analyzer-sub000/internal/remoteconfig"
)

func TestFetchGeminiAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"gemini_api_key": "test-key-123"}`))
	}))
	defer server.Close()

	key, err := remoteconfig.NewClient(server.URL).FetchGeminiAPIKey()
	assert.NoError(t, err)
	assert.Equal(t, "test-key-123", key)
}

func TestFetchGeminiAPIKeyMissingParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := remoteconfig.NewClient(server.URL).FetchGeminiAPIKey()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gemini_api_key")
}

func TestFetchGeminiAPIKeyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := remoteconfig.NewClient(server.URL).FetchGeminiAPIKey()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
