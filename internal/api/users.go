package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library

	"minivenmo/internal/domain"     // Domain users
	"minivenmo/internal/feed"       // Feed rendering
	"minivenmo/internal/middleware" // Current user lookup
	"minivenmo/internal/utils"      // Cache helpers
	"minivenmo/internal/venmo"      // Application facade
)

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Username   string          `json:"username" binding:"required"` // Username must be provided
	Balance    decimal.Decimal `json:"balance"`                     // Initial balance
	CardNumber string          `json:"card_number"`                 // Optional credit card
}

// UserResponse is the public view of a user
type UserResponse struct {
	Username string   `json:"username"` // Username
	Balance  string   `json:"balance"`  // Balance with two decimals
	HasCard  bool     `json:"has_card"` // Whether a card is attached
	Friends  []string `json:"friends"`  // Usernames of friends
}

// toUserResponse builds the public view of u
func toUserResponse(u *domain.User) UserResponse {
	_, hasCard := u.CardNumber()
	friends := make([]string, 0)
	for _, f := range u.Friends() {
		friends = append(friends, f.Username()) // Friend usernames only
	}
	return UserResponse{
		Username: u.Username(),
		Balance:  u.Balance().StringFixed(2),
		HasCard:  hasCard,
		Friends:  friends,
	}
}

// CreateUserHandler registers a new user with an initial balance and card
func CreateUserHandler(v *venmo.MiniVenmo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		u, err := v.CreateUser(c.Request.Context(), req.Username, req.Balance, req.CardNumber)
		if err != nil {
			abortWithError(c, err) // Invalid username, card or duplicate
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": toUserResponse(u)})
	}
}

// GetUserHandler returns the user loaded from the path
func GetUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := middleware.CurrentUser(c) // Get user from context
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": toUserResponse(u)})
	}
}

// FeedHandler returns the rendered activity feed of the user loaded from the path
func FeedHandler(cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := middleware.CurrentUser(c) // Get user from context
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctx := c.Request.Context()              // Context for Redis operations
		cacheKey := utils.FeedKey(u.Username()) // Cache key for the feed
		var lines []string
		found, err := cache.Get(ctx, cacheKey, &lines) // Try to get from cache
		if err != nil {
			logrus.WithError(err).WithField("key", cacheKey).Warn("Feed cache read failed")
		}
		if err == nil && found {
			// Return cached feed
			c.JSON(http.StatusOK, gin.H{"username": u.Username(), "feed": lines, "cached": true})
			return
		}
		lines = feed.Collect(u.Feed()) // Render from the live feed
		if err := cache.Set(ctx, cacheKey, lines); err != nil {
			logrus.WithError(err).WithField("key", cacheKey).Warn("Feed cache write failed")
		}
		c.JSON(http.StatusOK, gin.H{"username": u.Username(), "feed": lines, "cached": false})
	}
}
