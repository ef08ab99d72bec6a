package gemini

import (
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
)

// jsonMarker is the heuristic for the answer-bearing part: the model is
// prompted to reply with a fenced ```json block, so the part we want is the
// first one mentioning "json" anywhere in its text.
const jsonMarker = "json"

// ExtractJSON locates the answer-bearing text part in a GenerateContent
// response and returns the embedded JSON document as a cleaned string. It does
// not parse the JSON; that is MapAnalysis's job.
func ExtractJSON(resp *genai.GenerateContentResponse) (string, error) {
	texts, err := textParts(resp)
	if err != nil {
		return "", err
	}

	for _, text := range texts {
		if !strings.Contains(text, jsonMarker) {
			continue
		}
		cleaned := stripFences(text)
		if !utf8.ValidString(cleaned) {
			return "", ErrInvalidEncoding
		}
		return cleaned, nil
	}
	return "", ErrNoJSONBlock
}

// FirstText returns the first text part of the first candidate, for requests
// that expect a plain-text answer rather than JSON.
func FirstText(resp *genai.GenerateContentResponse) (string, error) {
	texts, err := textParts(resp)
	if err != nil {
		return "", err
	}
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
	}
	return "", ErrNoTextResponse
}

// textParts flattens the candidate/part envelope into the text fragments it
// carries, in response order.
func textParts(resp *genai.GenerateContentResponse) ([]string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrMalformedResponse
	}
	var texts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				texts = append(texts, string(txt))
			}
		}
	}
	if len(texts) == 0 {
		return nil, ErrMalformedResponse
	}
	return texts, nil
}

// stripFences removes a leading ```json (or bare ```) opener and a trailing
// ``` closer, then trims whitespace. Applying it to fence-free text is a
// no-op beyond trimming.
func stripFences(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
