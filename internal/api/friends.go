package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"minivenmo/internal/middleware" // Current user lookup
	"minivenmo/internal/utils"      // Cache helpers
	"minivenmo/internal/venmo"      // Application facade
)

// AddFriendRequest represents a friendship request
type AddFriendRequest struct {
	Username string `json:"username" binding:"required"` // Friend to add
	Mutual   bool   `json:"mutual"`                      // Add the friendship on both sides
}

// AddFriendHandler lets the user from the path befriend another user
func AddFriendHandler(v *venmo.MiniVenmo, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := middleware.CurrentUser(c) // Get initiator from context
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var req AddFriendRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		f, err := v.AddFriend(c.Request.Context(), u.Username(), req.Username, req.Mutual)
		if err != nil {
			abortWithError(c, err) // Unknown friend, self or duplicate
			return
		}
		keys := []string{utils.FeedKey(f.Initiator().Username())} // Initiator's feed always changes
		if f.Mutual() {
			keys = append(keys, utils.FeedKey(f.Target().Username())) // Target's feed too when mutual
		}
		if err := cache.Delete(c.Request.Context(), keys...); err != nil {
			logrus.WithError(err).Warn("Feed cache invalidation failed")
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":   "Friend added",
			"initiator": f.Initiator().Username(),
			"target":    f.Target().Username(),
			"mutual":    f.Mutual(),
		})
	}
}
