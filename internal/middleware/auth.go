package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BelleVueSalon/salon-booking-api/internal/config"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserName  = "userName"
	ContextIsAdmin   = "isAdmin"
)

func parseClaims(tokenString, secret string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	// Refresh tokens are not valid for API access.
	if typ, _ := claims["typ"].(string); typ == "refresh" {
		return nil, false
	}

	return claims, true
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) bool {
	userID, ok := claims["sub"].(float64)
	if !ok {
		return false
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	isAdmin, _ := claims["admin"].(bool)

	c.Set(ContextUserID, uint(userID))
	c.Set(ContextUserEmail, email)
	c.Set(ContextUserName, name)
	c.Set(ContextIsAdmin, isAdmin)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		claims, ok := parseClaims(tokenString, cfg.JWTSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if !setIdentity(c, claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid bearer
// token is present and lets the request through as a guest otherwise.
// Booking creation is open to guests, so a bad token is simply ignored.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, ok := parseClaims(tokenString, cfg.JWTSecret); ok {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, _ := c.Get(ContextIsAdmin)
		if admin, ok := isAdmin.(bool); !ok || !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_required"})
			return
		}
		c.Next()
	}
}

// RequesterID returns the authenticated user id, or nil for guests.
func RequesterID(c *gin.Context) *uint {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func IsAdmin(c *gin.Context) bool {
	v, _ := c.Get(ContextIsAdmin)
	admin, _ := v.(bool)
	return admin
}
