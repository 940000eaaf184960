package middleware

import (
	"errors"
	"strings"

	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/service"
	"github.com/finance-tracker/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyEmail is the key for user email in gin context
	ContextKeyEmail = "email"
	// ContextKeyRole is the key for user role in gin context
	ContextKeyRole = "role"
)

// AuthMiddleware validates the bearer token and resolves it to a live
// user record. Requests whose token subject no longer exists are
// rejected, not just requests with bad signatures.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "no token provided, authorization denied")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		user, err := authService.Authenticate(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				response.Unauthorized(c, "token expired")
			case errors.Is(err, service.ErrUserNotFound):
				response.Unauthorized(c, "user not found")
			default:
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		// Attach the resolved identity for downstream handlers
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyEmail, user.Email)
		c.Set(ContextKeyRole, user.Role)

		c.Next()
	}
}

// AdminOnly rejects requests from non-admin users. Must run after
// AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != models.RoleAdmin {
			response.Forbidden(c, "access denied, admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the user ID from the gin context
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	return userID.(uint)
}

// GetEmail gets the user email from the gin context
func GetEmail(c *gin.Context) string {
	email, exists := c.Get(ContextKeyEmail)
	if !exists {
		return ""
	}
	return email.(string)
}

// GetRole gets the user role from the gin context
func GetRole(c *gin.Context) models.Role {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	return role.(models.Role)
}
