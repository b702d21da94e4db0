package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"minivenmo/internal/domain" // Domain users
	"minivenmo/internal/venmo"  // User registry
)

// UserKey is the context key holding the *domain.User named in the path
const UserKey = "user"

// LoadUser resolves the :username path parameter and stores the user in the context
func LoadUser(v *venmo.MiniVenmo) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := v.User(c.Param("username")) // Look up the registry
		if err != nil {
			// If the user is unknown, abort with not found status
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.Set(UserKey, u) // Store user in context
		c.Next()          // Proceed to the next handler
	}
}

// CurrentUser returns the user stored by LoadUser
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserKey) // Get user from context
	if !exists {
		return nil, false
	}
	u, ok := v.(*domain.User) // Assert the stored type
	return u, ok
}
