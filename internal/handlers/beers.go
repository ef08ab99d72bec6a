package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/38tter/beer-analyzer-sub000/internal/middleware"
	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/store"
)

type BeersHandler struct {
	store *store.BeerStore
}

func NewBeersHandler(beerStore *store.BeerStore) *BeersHandler {
	return &BeersHandler{store: beerStore}
}

// List godoc
// @Summary     List beer records
// @Description Establishes (or replaces) the live query for this user and
// @Description returns the first page. order=asc flips the timestamp sort.
// @Produce     json
// @Security    Bearer
// @Param       order query string false "asc or desc (default desc)"
// @Success     200 {object} models.BeerListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /beers [get]
func (h *BeersHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	descending := c.DefaultQuery("order", "desc") != "asc"

	sub, err := h.store.Query(c.Request.Context(), userID, descending)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrAuthRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, models.ErrorResponse{Error: "query failed", Message: err.Error()})
		return
	}

	// First page arrives as the subscription's initial snapshot. The REST
	// surface only needs that one snapshot; live consumers use the stream
	// endpoint instead.
	recs := <-sub.Updates()
	h.store.StopObserving(sub)

	c.JSON(http.StatusOK, models.ToBeerListResponse(recs, h.store.HasMore(userID)))
}

// LoadMore godoc
// @Summary     Load the next page
// @Description Fetches the page after the last returned record. An empty list
// @Description means the collection is exhausted.
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.BeerListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /beers/more [post]
func (h *BeersHandler) LoadMore(c *gin.Context) {
	userID := middleware.UserID(c)

	recs, err := h.store.LoadMore(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "auth required", Message: err.Error()})
		case errors.Is(err, store.ErrNoActiveQuery):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "no active query", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "load more failed", Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.ToBeerListResponse(recs, h.store.HasMore(userID)))
}

// Update godoc
// @Summary     Update a beer record
// @Description Whole-record overwrite of the mutable fields from the edit form.
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       beer_id path string true "Record ID"
// @Param       beer body models.UpdateBeerRequest true "Replacement record"
// @Success     200 {object} models.BeerResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /beers/{beer_id} [put]
func (h *BeersHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	beerID := c.Param("beer_id")

	var req models.UpdateBeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Rating != nil && (*req.Rating < 0.0 || *req.Rating > 5.0) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rating must be between 0.0 and 5.0"})
		return
	}

	// The request carries every mutable field, so the overwrite is one UPDATE
	// with no prior read; immutable fields are never part of the statement.
	var rec models.BeerRecord
	applyUpdate(&rec, &req)
	if err := h.store.Update(c.Request.Context(), beerID, userID, &rec); err != nil {
		h.renderStoreError(c, err)
		return
	}

	updated, err := h.store.Get(c.Request.Context(), beerID, userID)
	if err != nil {
		h.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToBeerResponse(updated))
}

// ToggleDrunk godoc
// @Summary     Toggle the drunk flag
// @Produce     json
// @Security    Bearer
// @Param       beer_id path string true "Record ID"
// @Success     200 {object} models.BeerResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /beers/{beer_id}/drunk [post]
func (h *BeersHandler) ToggleDrunk(c *gin.Context) {
	userID := middleware.UserID(c)
	beerID := c.Param("beer_id")

	rec, err := h.store.ToggleDrunk(c.Request.Context(), beerID, userID)
	if err != nil {
		h.renderStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToBeerResponse(rec))
}

// Delete godoc
// @Summary     Delete a beer record
// @Description Best-effort-once: a repeated delete may or may not fail.
// @Produce     json
// @Security    Bearer
// @Param       beer_id path string true "Record ID"
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Router      /beers/{beer_id} [delete]
func (h *BeersHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	beerID := c.Param("beer_id")

	if err := h.store.Delete(c.Request.Context(), beerID, userID); err != nil {
		h.renderStoreError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BeersHandler) renderStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "auth required", Message: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "record not found", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "store operation failed", Message: err.Error()})
	}
}

// applyUpdate replaces the mutable fields; user id, timestamp, and image URL
// stay as stored.
func applyUpdate(rec *models.BeerRecord, req *models.UpdateBeerRequest) {
	rec.BeerName = req.BeerName
	rec.Brand = req.Brand
	rec.Manufacturer = req.Manufacturer
	rec.ABV = req.ABV
	rec.Capacity = req.Capacity
	rec.Hops = req.Hops
	rec.IsNotBeer = req.IsNotBeer
	rec.HasDrunk = req.HasDrunk

	rec.WebsiteURL = sql.NullString{}
	if req.WebsiteURL != nil {
		rec.WebsiteURL = sql.NullString{String: *req.WebsiteURL, Valid: true}
	}
	rec.Memo = sql.NullString{}
	if req.Memo != nil {
		rec.Memo = sql.NullString{String: *req.Memo, Valid: true}
	}
	rec.Rating = sql.NullFloat64{}
	if req.Rating != nil {
		rec.Rating = sql.NullFloat64{Float64: *req.Rating, Valid: true}
	}
}
