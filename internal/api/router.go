package api

import (
	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"minivenmo/internal/db"         // Ledger journal
	"minivenmo/internal/middleware" // Request logging and user lookup
	"minivenmo/internal/utils"      // Cache helpers
	"minivenmo/internal/venmo"      // Application facade
)

// NewRouter wires every route onto a new gin engine
func NewRouter(v *venmo.MiniVenmo, journal *db.Journal, cache *utils.Cache, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()                                       // Gin router instance
	r.Use(middleware.RequestLogger(log), gin.Recovery()) // Logging and panic recovery

	r.POST("/users", CreateUserHandler(v)) // Registration endpoint

	// Per-user routes resolve :username first
	userGroup := r.Group("/users/:username", middleware.LoadUser(v))
	userGroup.GET("", GetUserHandler())                    // User endpoint
	userGroup.GET("/feed", FeedHandler(cache))             // Feed endpoint
	userGroup.POST("/payments", PayHandler(v, cache))      // Payment endpoint
	userGroup.POST("/friends", AddFriendHandler(v, cache)) // Friendship endpoint

	adminGroup := r.Group("/admin")
	adminGroup.GET("/users", ListUsersHandler(v))                    // List users endpoint
	adminGroup.GET("/payments", ListPaymentsHandler(journal, cache)) // List payments endpoint
	return r
}
