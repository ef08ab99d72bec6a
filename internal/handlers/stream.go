package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	ws "github.com/coder/websocket"

	"github.com/38tter/beer-analyzer-sub000/internal/middleware"
	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/store"
)

const pingInterval = 30 * time.Second

type StreamHandler struct {
	store *store.BeerStore
}

func NewStreamHandler(beerStore *store.BeerStore) *StreamHandler {
	return &StreamHandler{store: beerStore}
}

// Stream upgrades the connection to a WebSocket and forwards live result-set
// snapshots for the caller's records, newest sort first unless order=asc. The
// store allows one live subscription at a time, so a newer stream (or a list
// request) ends this one: the client sees the channel close and reconnects if
// it still cares. Disconnecting releases the subscription.
func (h *StreamHandler) Stream(c *gin.Context) {
	userID := middleware.UserID(c)
	descending := c.DefaultQuery("order", "desc") != "asc"

	conn, err := ws.Accept(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("stream: accept: %v", err)
		return
	}
	defer conn.Close(ws.StatusNormalClosure, "")

	// The client sends no data frames, but control frames (pongs, close) are
	// only processed while a read is in flight. CloseRead keeps consuming the
	// connection and cancels the context when the client goes away; without it
	// the first Ping would block forever waiting for its pong.
	ctx := conn.CloseRead(c.Request.Context())

	sub, err := h.store.Query(ctx, userID, descending)
	if err != nil {
		conn.Close(ws.StatusPolicyViolation, "query failed")
		return
	}
	defer h.store.StopObserving(sub)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case recs, ok := <-sub.Updates():
			if !ok {
				// Replaced by a newer query.
				return
			}
			payload, err := json.Marshal(models.ToBeerListResponse(recs, h.store.HasMore(userID)))
			if err != nil {
				log.Printf("stream: marshal snapshot: %v", err)
				return
			}
			if err := conn.Write(ctx, ws.MessageText, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
