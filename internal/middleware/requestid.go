package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the key for the request ID in gin context
const ContextKeyRequestID = "request_id"

// RequestIDHeader is the header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an ID, honoring one
// supplied by the client, and echoes it on the response
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID gets the request ID from the gin context
func GetRequestID(c *gin.Context) string {
	requestID, exists := c.Get(ContextKeyRequestID)
	if !exists {
		return ""
	}
	return requestID.(string)
}
