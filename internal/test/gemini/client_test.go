package gemini_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/38tter/beer-analyzer-sub000/internal/gemini"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := gemini.NewClient(context.Background(), "", "gemini-2.0-flash", gemini.LanguageEnglish)
	assert.Error(t, err)
}

func TestClientClose(t *testing.T) {
	// Construction and Close are offline; the SDK dials lazily on first call.
	c, err := gemini.NewClient(context.Background(), "test-key", "", gemini.LanguageEnglish)
	assert.NoError(t, err)
	assert.NoError(t, c.Close())
}
