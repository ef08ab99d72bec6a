package supabase_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/38tter/beer-analyzer-sub000/internal/supabase"
)

func TestSignInAnonymously(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, "{}", string(body))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-token",
			"user":         map[string]any{"id": "user-abc"},
		})
	}))
	defer server.Close()

	session, err := supabase.NewAuthClient(server.URL, "anon-key").SignInAnonymously()
	assert.NoError(t, err)
	assert.Equal(t, "user-abc", session.UserID)
	assert.Equal(t, "jwt-token", session.AccessToken)
}

func TestSignInAnonymouslyRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"anonymous sign-ins are disabled"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	_, err := supabase.NewAuthClient(server.URL, "anon-key").SignInAnonymously()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

func TestSignInAnonymouslyMissingUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "jwt-token"}`))
	}))
	defer server.Close()

	_, err := supabase.NewAuthClient(server.URL, "anon-key").SignInAnonymously()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "user id is empty")
}
