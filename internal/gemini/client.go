package gemini

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the Gemini SDK for the two calls this service makes: the
// vision analysis of a beer photo and the text-only pairing suggestion.
type Client struct {
	sdk         *genai.Client
	visionModel *genai.GenerativeModel
	textModel   *genai.GenerativeModel
	lang        Language
}

// NewClient builds a Gemini client. The API key usually comes from remote
// config; modelName falls back to a sensible default when empty.
func NewClient(ctx context.Context, apiKey, modelName string, lang Language) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key must not be empty")
	}
	if modelName == "" {
		modelName = defaultModel
		log.Printf("gemini: no model configured, using default %s", modelName)
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		sdk:         sdk,
		visionModel: sdk.GenerativeModel(modelName),
		textModel:   sdk.GenerativeModel(modelName),
		lang:        lang,
	}, nil
}

// Close releases the underlying SDK connection.
func (c *Client) Close() error {
	return c.sdk.Close()
}

// AnalyzeBeerImage sends the photo with the analysis prompt and runs the
// extraction and mapping pipeline over the response.
func (c *Client) AnalyzeBeerImage(ctx context.Context, image []byte, mimeType string) (*models.AnalysisResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image data must not be empty")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	parts := []genai.Part{
		genai.Text(AnalysisPrompt(c.lang)),
		genai.Blob{MIMEType: mimeType, Data: image},
	}
	resp, err := c.visionModel.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed: %w", err)
	}

	jsonStr, err := ExtractJSON(resp)
	if err != nil {
		return nil, err
	}
	return MapAnalysis(jsonStr, c.lang.Sentinel())
}

// SuggestPairing asks for a plain-text food pairing for a saved record.
func (c *Client) SuggestPairing(ctx context.Context, rec *models.BeerRecord) (string, error) {
	resp, err := c.textModel.GenerateContent(ctx, genai.Text(PairingPrompt(c.lang, rec)))
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	return FirstText(resp)
}
