package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/38tter/beer-analyzer-sub000/internal/handlers"
	"github.com/38tter/beer-analyzer-sub000/internal/middleware"
	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/store"
)

func TestStreamDeliversSnapshots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	beerStore := store.NewBeerStore(&memRepo{}, 5)
	h := handlers.NewStreamHandler(beerStore)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-1")
		c.Next()
	})
	router.GET("/beers/stream", h.Stream)

	server := httptest.NewServer(router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/beers/stream"
	conn, _, err := ws.Dial(ctx, url, nil)
	assert.NoError(t, err)
	defer conn.Close(ws.StatusNormalClosure, "")

	// First frame is the initial (empty) snapshot, sent once the live query
	// is established.
	_, payload, err := conn.Read(ctx)
	assert.NoError(t, err)
	var first models.BeerListResponse
	assert.NoError(t, json.Unmarshal(payload, &first))
	assert.Empty(t, first.Beers)

	// A mutation after the first frame pushes a refreshed snapshot.
	_, err = beerStore.Create(context.Background(), models.AnalysisResult{BeerName: "Pils"}, "user-1", "")
	assert.NoError(t, err)

	_, payload, err = conn.Read(ctx)
	assert.NoError(t, err)
	var second models.BeerListResponse
	assert.NoError(t, json.Unmarshal(payload, &second))
	assert.Len(t, second.Beers, 1)
	assert.Equal(t, "Pils", second.Beers[0].BeerName)
}
