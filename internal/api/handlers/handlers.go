package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocampus/campus-carpool/internal/domain/vehicle"
	"github.com/gocampus/campus-carpool/internal/service/bookingledger"
	"github.com/gocampus/campus-carpool/internal/service/ridelifecycle"
	apperrors "github.com/gocampus/campus-carpool/pkg/errors"
	"github.com/gocampus/campus-carpool/pkg/logger"
)

// Handlers holds all handler dependencies
type Handlers struct {
	Rides    *ridelifecycle.Service
	Bookings *bookingledger.Service
	Vehicles vehicle.Registry
	Logger   *logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(rides *ridelifecycle.Service, bookings *bookingledger.Service, vehicles vehicle.Registry, log *logger.Logger) *Handlers {
	return &Handlers{
		Rides:    rides,
		Bookings: bookings,
		Vehicles: vehicles,
		Logger:   log,
	}
}

// respondError renders the error envelope for any service error. Expected
// domain failures keep their code and status; everything else is a storage
// failure.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			logger.String("path", c.FullPath()),
			logger.Err(err),
		)
	}
	c.JSON(appErr.Status, appErr)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "BAD_REQUEST",
		"message": "Invalid request payload",
		"details": err.Error(),
	})
}
