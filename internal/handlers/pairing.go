package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/38tter/beer-analyzer-sub000/internal/gemini"
	"github.com/38tter/beer-analyzer-sub000/internal/middleware"
	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/store"
)

// PairingSuggester is implemented by the gemini client.
type PairingSuggester interface {
	SuggestPairing(ctx context.Context, rec *models.BeerRecord) (string, error)
}

type PairingHandler struct {
	store *store.BeerStore
	ai    PairingSuggester
}

func NewPairingHandler(beerStore *store.BeerStore, ai PairingSuggester) *PairingHandler {
	return &PairingHandler{store: beerStore, ai: ai}
}

// Suggest godoc
// @Summary     Food pairing suggestion
// @Description Asks the model for a plain-text pairing suggestion for a saved beer.
// @Produce     json
// @Security    Bearer
// @Param       beer_id path string true "Record ID"
// @Success     200 {object} models.PairingResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /beers/{beer_id}/pairing [get]
func (h *PairingHandler) Suggest(c *gin.Context) {
	userID := middleware.UserID(c)
	beerID := c.Param("beer_id")

	rec, err := h.store.Get(c.Request.Context(), beerID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "auth required", Message: err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "record not found", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "store operation failed", Message: err.Error()})
		}
		return
	}

	suggestion, err := h.ai.SuggestPairing(c.Request.Context(), rec)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, gemini.ErrNoTextResponse) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, models.ErrorResponse{Error: "pairing suggestion failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.PairingResponse{BeerID: beerID, Suggestion: suggestion})
}
