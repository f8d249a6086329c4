package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeaderKey is the header carrying the request ID
const RequestIDHeaderKey = "X-Request-ID"

// RequestID attaches a request ID to every request, generating one when
// the client did not send one, and echoes it back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeaderKey)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDHeaderKey, requestID)
		c.Header(RequestIDHeaderKey, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID attached by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDHeaderKey)
}
