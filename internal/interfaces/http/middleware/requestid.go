package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sharayeh/internal/shared/constants"
)

// RequestID attaches a request identifier to every request, generating one
// when the client did not send X-Request-ID, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderXRequestID, requestID)

		c.Next()
	}
}
