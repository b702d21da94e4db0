package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs each request with logrus and tags it with a request ID
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString() // Generate one when the caller did not
		}
		c.Header(RequestIDHeader, requestID) // Echo it back
		c.Set("requestID", requestID)        // Expose it to handlers

		c.Next() // Process request

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,                  // Request ID
			"status":     c.Writer.Status(),          // Response status
			"method":     c.Request.Method,           // HTTP method
			"path":       c.Request.URL.Path,         // Request path
			"ip":         c.ClientIP(),               // Client IP
			"latency":    time.Since(start).String(), // Request latency
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String()) // Attach handler errors
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Server error")
		case status >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request")
		}
	}
}
