package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // Case folding

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"minivenmo/internal/db"    // Ledger journal
	"minivenmo/internal/utils" // Cache helpers
	"minivenmo/internal/venmo" // Application facade
)

// pagination reads page and page_size with the defaults 1 and 20 (max 100)
func pagination(c *gin.Context) (int, int) {
	page := 1      // Default page number
	pageSize := 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size if valid
		}
	}
	return page, pageSize
}

// ListUsersHandler returns a page of registered users with live balances
func ListUsersHandler(v *venmo.MiniVenmo) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		users := v.Users()  // Users in creation order
		total := len(users) // Total number of users
		start := (page - 1) * pageSize
		end := min(start+pageSize, total)
		resp := make([]UserResponse, 0, pageSize)
		for i := start; i < end; i++ {
			resp = append(resp, toUserResponse(users[i])) // Map users to response format
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       resp,                              // List of users
			"page":        page,                              // Current page
			"page_size":   pageSize,                          // Page size
			"total":       total,                             // Total number of users
			"total_pages": (total + pageSize - 1) / pageSize, // Total pages
		})
	}
}

// ListPaymentsHandler returns journaled payments, optionally filtered by user or source
func ListPaymentsHandler(journal *db.Journal, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := pagination(c)
		filter := db.PaymentFilter{
			Username: c.Query("user"),   // Filter by payer or payee
			Source:   c.Query("source"), // Filter by funding source
			Page:     page,
			PageSize: pageSize,
		}
		// Build cache key from all query params
		cacheKey := utils.PaymentsKey(
			"user="+strings.ToLower(filter.Username), // Usernames match case-insensitively
			"source="+filter.Source,
			"page="+strconv.Itoa(page),
			"size="+strconv.Itoa(pageSize),
		)
		var cached struct {
			Payments   []db.PaymentRecord `json:"payments"`    // List of payments
			Page       int                `json:"page"`        // Current page
			PageSize   int                `json:"page_size"`   // Page size
			Total      int64              `json:"total"`       // Total number of payments
			TotalPages int                `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		if found, err := cache.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"payments":    cached.Payments,   // List of payments
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of payments
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		recs, total, err := journal.ListPayments(ctx, filter)
		if err != nil {
			logrus.WithError(err).Error("Failed to list payments")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
			return
		}
		respData := gin.H{
			"payments":    recs,                                   // List of payments
			"page":        page,                                   // Current page
			"page_size":   pageSize,                               // Page size
			"total":       total,                                  // Total number of payments
			"total_pages": (int(total) + pageSize - 1) / pageSize, // Total pages
			"cached":      false,                                  // Indicate response is not from cache
		}
		// Cache the response for future requests
		if err := cache.Set(ctx, cacheKey, respData); err != nil {
			logrus.WithError(err).WithField("key", cacheKey).Warn("Payment listing cache write failed")
		}
		c.JSON(http.StatusOK, respData)
	}
}
