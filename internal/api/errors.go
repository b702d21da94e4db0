package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"minivenmo/internal/domain" // Domain errors
	"minivenmo/internal/venmo"  // Registry errors
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var (
		usernameErr   *domain.UsernameError
		cardErr       *domain.CreditCardError
		paymentErr    *domain.PaymentError
		friendshipErr *domain.FriendshipError
	)
	switch {
	case errors.Is(err, venmo.ErrUserNotFound):
		return http.StatusNotFound // Unknown user
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrCardAlreadyPresent),
		errors.Is(err, domain.ErrAlreadyFriends):
		return http.StatusConflict // State already exists
	case errors.Is(err, domain.ErrCardDeclined):
		return http.StatusPaymentRequired // Card processor said no
	case errors.As(err, &usernameErr),
		errors.As(err, &cardErr),
		errors.As(err, &paymentErr),
		errors.As(err, &friendshipErr):
		return http.StatusBadRequest // Validation failure
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the error response for err
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err) // Keep the cause for the request logger
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
