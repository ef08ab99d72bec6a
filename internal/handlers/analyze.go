package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/38tter/beer-analyzer-sub000/internal/middleware"
	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/services"
)

const maxImageBytes = 20 << 20

type AnalyzeHandler struct {
	service *services.AnalyzeService
}

func NewAnalyzeHandler(service *services.AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{service: service}
}

// Analyze godoc
// @Summary     Analyze a beer photo
// @Description Uploads the photo, runs the vision analysis, and persists the
// @Description resulting record. When persistence fails the analysis is still
// @Description returned alongside the error.
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Beer photo"
// @Success     201 {object} models.AnalyzeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /beers/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "image file is required",
			Message: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open image",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read image",
			Message: err.Error(),
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	rec, err := h.service.Analyze(c.Request.Context(), data, contentType, userID)
	if err != nil {
		var pipeErr *services.PipelineError
		if errors.As(err, &pipeErr) && pipeErr.Stage == services.StagePersisting && rec != nil {
			// The analysis succeeded but was not saved; surface both.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "persistence failed",
				"message": pipeErr.Err.Error(),
				"beer":    models.ToBeerResponse(rec),
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "analysis failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.AnalyzeResponse{Beer: models.ToBeerResponse(rec)})
}
