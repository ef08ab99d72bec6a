package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/supabase"
)

type AuthHandler struct {
	authClient *supabase.AuthClient
}

func NewAuthHandler(authClient *supabase.AuthClient) *AuthHandler {
	return &AuthHandler{authClient: authClient}
}

// SignInAnonymously godoc
// @Summary     Anonymous sign-in
// @Description Creates an anonymous user and returns its id and access token.
// @Produce     json
// @Success     200 {object} models.AnonymousAuthResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /auth/anonymous [post]
func (h *AuthHandler) SignInAnonymously(c *gin.Context) {
	session, err := h.authClient.SignInAnonymously()
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "anonymous sign-in failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AnonymousAuthResponse{
		UserID:      session.UserID,
		AccessToken: session.AccessToken,
	})
}
