// Package remoteconfig fetches the Gemini API key from a remote parameter
// endpoint, so the key can be rotated without redeploying. A configured env
// key is the fallback when no endpoint is set.
package remoteconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	url        string
	httpClient *http.Client
}

type parameters struct {
	GeminiAPIKey string `json:"gemini_api_key"`
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchGeminiAPIKey retrieves the current API key parameter.
func (c *Client) FetchGeminiAPIKey() (string, error) {
	resp, err := c.httpClient.Get(c.url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch remote config: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("remote config fetch failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var params parameters
	if err := json.Unmarshal(body, &params); err != nil {
		return "", fmt.Errorf("failed to decode remote config: %w", err)
	}
	if params.GeminiAPIKey == "" {
		return "", fmt.Errorf("remote config has no gemini_api_key parameter")
	}
	return params.GeminiAPIKey, nil
}
