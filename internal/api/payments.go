package api

import (
	"net/http" // HTTP status codes
	"time"     // Timestamps

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library

	"minivenmo/internal/domain"     // Domain payments
	"minivenmo/internal/middleware" // Current user lookup
	"minivenmo/internal/utils"      // Cache helpers
	"minivenmo/internal/venmo"      // Application facade
)

// PayRequest represents a payment request
type PayRequest struct {
	ToUsername string          `json:"to_username" binding:"required"` // Target username
	Amount     decimal.Decimal `json:"amount"`                         // Payment amount
	Note       string          `json:"note"`                           // Optional note
}

// PaymentResponse is the public view of a payment
type PaymentResponse struct {
	ID        string `json:"id"`         // Payment UUID
	Payer     string `json:"payer"`      // Payer username
	Payee     string `json:"payee"`      // Payee username
	Amount    string `json:"amount"`     // Amount with two decimals
	Note      string `json:"note"`       // Optional note
	Source    string `json:"source"`     // balance or card
	CreatedAt string `json:"created_at"` // RFC3339 timestamp
}

// toPaymentResponse builds the public view of p
func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID(),
		Payer:     p.Payer().Username(),
		Payee:     p.Payee().Username(),
		Amount:    p.Amount().StringFixed(2),
		Note:      p.Note(),
		Source:    string(p.Source()),
		CreatedAt: p.CreatedAt().Format(time.RFC3339),
	}
}

// PayHandler lets the user from the path pay another user
func PayHandler(v *venmo.MiniVenmo, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		payer, ok := middleware.CurrentUser(c) // Get payer from context
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var req PayRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		p, err := v.Pay(c.Request.Context(), payer.Username(), req.ToUsername, req.Amount, req.Note)
		if err != nil {
			abortWithError(c, err) // Self payment, bad amount, no card, declined
			return
		}
		ctx := c.Request.Context()
		// Invalidate the feed cache of both users
		if err := cache.Delete(ctx, utils.FeedKey(p.Payer().Username()), utils.FeedKey(p.Payee().Username())); err != nil {
			logrus.WithError(err).WithField("payment_id", p.ID()).Warn("Feed cache invalidation failed")
		}
		// Every cached payment listing may now be missing this payment
		if err := cache.DeletePrefix(ctx, utils.PaymentsPrefix); err != nil {
			logrus.WithError(err).WithField("payment_id", p.ID()).Warn("Payment listing cache invalidation failed")
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Payment successful", "payment": toPaymentResponse(p)})
	}
}
