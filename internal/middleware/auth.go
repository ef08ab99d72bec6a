package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/38tter/beer-analyzer-sub000/internal/config"
)

const UserIDKey = "user_id"

// AuthMiddleware verifies the Supabase JWT on every request and stores the
// user id from the "sub" claim in the gin context. Anonymous sessions carry
// the same token shape as registered ones, so nothing here distinguishes them.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			c.Abort()
			return
		}

		// Supabase signs with HS256; the project JWT secret is the key.
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil {
			var errorMsg string
			switch {
			case strings.Contains(err.Error(), "signature is invalid"):
				errorMsg = "token signature is invalid - check JWT secret"
			case strings.Contains(err.Error(), "token is expired"):
				errorMsg = "token has expired"
			default:
				errorMsg = err.Error()
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "message": errorMsg})
			c.Abort()
			return
		}
		if !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id in token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, sub)
		c.Next()
	}
}

// UserID returns the authenticated user id from the context, or empty when
// the request was not authenticated.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
