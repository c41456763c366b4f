package routes

import (
	"net/http"
	"time"

	"soupbarber/handlers"
	"soupbarber/middleware"
	"soupbarber/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, this is Soup Barber booking",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterBookingRoutes sets up the endpoints for the booking widget.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))
		bookingGroup.GET("/slots", hb.GetSlots)
		bookingGroup.POST("/session", hb.CreateSession)
		bookingGroup.GET("/session/:sessionID", hb.GetSession)
		bookingGroup.DELETE("/session/:sessionID", hb.DeleteSession)
		bookingGroup.PUT("/session/:sessionID/date", hb.SelectDate)
		bookingGroup.PUT("/session/:sessionID/time", hb.SelectTime)
		bookingGroup.PUT("/session/:sessionID/contact", hb.UpdateContact)
		bookingGroup.POST("/session/:sessionID/submit", hb.Submit)
		bookingGroup.POST("/session/:sessionID/reset", hb.Reset)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb, maxRequestsPerMin)
}
