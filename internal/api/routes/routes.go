package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gocampus/campus-carpool/internal/api/handlers"
	"github.com/gocampus/campus-carpool/internal/api/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, nrApp *newrelic.Application, allowedOrigins []string) {
	// Add New Relic middleware if enabled
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	r.Use(middleware.RequestID())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-ID")
	r.Use(cors.New(corsCfg))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Ride endpoints
		rides := v1.Group("/rides")
		{
			rides.POST("", h.CreateRide)
			rides.GET("", h.ListOpenRides)
			rides.GET("/:id", h.GetRide)
			rides.PATCH("/:id/status", h.UpdateRideStatus)
			rides.POST("/:id/cancel", h.CancelRide)
			rides.GET("/:id/bookings", h.ListRideBookings)
		}

		// Booking endpoints
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/:id", h.GetBooking)
			bookings.PATCH("/:id/status", h.UpdateBookingStatus)
			bookings.POST("/:id/cancel", h.CancelBooking)
		}

		// Vehicle endpoints
		v1.POST("/vehicles", h.RegisterVehicle)

		// Driver endpoints
		drivers := v1.Group("/drivers")
		{
			drivers.GET("/:id/vehicle", h.GetActiveVehicle)
			drivers.GET("/:id/rides", h.ListDriverRides)
		}

		// Passenger endpoints
		passengers := v1.Group("/passengers")
		{
			passengers.GET("/:id/bookings", h.ListPassengerBookings)
		}
	}
}
