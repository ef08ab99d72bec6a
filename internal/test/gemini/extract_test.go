package gemini_test

import (
	"testing"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"

	"github.com/38tter/beer-analyzer-sub000/internal/gemini"
)

func responseWithTexts(texts ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, len(texts))
	for i, t := range texts {
		parts[i] = genai.Text(t)
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	resp := responseWithTexts("```json\n{\"brand\": \"X\"}\n```")

	got, err := gemini.ExtractJSON(resp)
	assert.NoError(t, err)
	assert.Equal(t, `{"brand": "X"}`, got)
}

func TestExtractJSON_BareFence(t *testing.T) {
	// Some answers open with a bare ``` but still mention json in the payload.
	resp := responseWithTexts("```\n{\"brand\": \"X\", \"format\": \"json\"}\n```")

	got, err := gemini.ExtractJSON(resp)
	assert.NoError(t, err)
	assert.Equal(t, `{"brand": "X", "format": "json"}`, got)
}

func TestExtractJSON_FenceStrippingIdempotent(t *testing.T) {
	// Fences contribute nothing: the fenced and fence-free forms of the same
	// payload extract identically.
	payload := `{"beer_name": "json lager"}`

	fenced, err := gemini.ExtractJSON(responseWithTexts("```json\n" + payload + "\n```"))
	assert.NoError(t, err)

	plain, err := gemini.ExtractJSON(responseWithTexts("  " + payload + "\n"))
	assert.NoError(t, err)

	assert.Equal(t, fenced, plain)
	assert.Equal(t, payload, plain)
}

func TestExtractJSON_NoCandidates(t *testing.T) {
	_, err := gemini.ExtractJSON(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, gemini.ErrMalformedResponse)

	_, err = gemini.ExtractJSON(nil)
	assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
}

func TestExtractJSON_InvalidEncoding(t *testing.T) {
	// Go strings carry arbitrary bytes; a block that is not valid UTF-8 must
	// be rejected, not passed to the mapper.
	resp := responseWithTexts("```json\n{\"brand\": \"\xff\xfe\"}\n```")

	_, err := gemini.ExtractJSON(resp)
	assert.ErrorIs(t, err, gemini.ErrInvalidEncoding)
}

func TestExtractJSON_NoJSONBlock(t *testing.T) {
	resp := responseWithTexts("I could not identify the beer, sorry.")

	got, err := gemini.ExtractJSON(resp)
	assert.ErrorIs(t, err, gemini.ErrNoJSONBlock)
	assert.Empty(t, got)
}

func TestExtractJSON_SkipsProseParts(t *testing.T) {
	resp := responseWithTexts(
		"Here is the analysis you asked for.",
		"```json\n{\"brand\": \"Y\"}\n```",
	)

	got, err := gemini.ExtractJSON(resp)
	assert.NoError(t, err)
	assert.Equal(t, `{"brand": "Y"}`, got)
}

func TestFirstText(t *testing.T) {
	resp := responseWithTexts("  Try it with grilled sausages.  ")

	got, err := gemini.FirstText(resp)
	assert.NoError(t, err)
	assert.Equal(t, "Try it with grilled sausages.", got)
}

func TestFirstText_NoText(t *testing.T) {
	resp := responseWithTexts("   ")

	_, err := gemini.FirstText(resp)
	assert.ErrorIs(t, err, gemini.ErrNoTextResponse)
}
