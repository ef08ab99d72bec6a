package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AuthClient performs anonymous sign-in against the GoTrue endpoint. The
// returned user id is the opaque identifier every record is keyed on;
// subsequent requests authenticate with the returned JWT.
type AuthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type AnonymousSession struct {
	UserID      string
	AccessToken string
}

type signUpResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

func NewAuthClient(supabaseURL, apiKey string) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimSuffix(supabaseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SignInAnonymously creates an anonymous user and returns its id and access
// token. Requires anonymous sign-ins to be enabled on the Supabase project.
func (a *AuthClient) SignInAnonymously() (*AnonymousSession, error) {
	url := a.baseURL + "/auth/v1/signup"

	req, err := http.NewRequest("POST", url, bytes.NewBufferString("{}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anonymous sign-in failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result signUpResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}
	if result.User.ID == "" {
		return nil, fmt.Errorf("user id is empty in response, body: %s", string(body))
	}

	return &AnonymousSession{
		UserID:      result.User.ID,
		AccessToken: result.AccessToken,
	}, nil
}
