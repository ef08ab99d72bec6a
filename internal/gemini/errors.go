package gemini

import "errors"

var (
	// ErrMalformedResponse means the response envelope carried no candidate
	// with content at all.
	ErrMalformedResponse = errors.New("gemini: response has no candidates")

	// ErrNoJSONBlock means no text part contained a recognizable JSON block.
	ErrNoJSONBlock = errors.New("gemini: no json block in response")

	// ErrInvalidEncoding means the extracted block is not valid UTF-8.
	ErrInvalidEncoding = errors.New("gemini: extracted block is not valid utf-8")

	// ErrDecode means the JSON payload did not match the expected analysis shape.
	ErrDecode = errors.New("gemini: analysis payload does not match expected shape")

	// ErrNoTextResponse means a plain-text request came back without any text part.
	ErrNoTextResponse = errors.New("gemini: no text part in response")
)
