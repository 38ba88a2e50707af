package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocampus/campus-carpool/internal/api/dto"
	"github.com/gocampus/campus-carpool/internal/domain/vehicle"
	apperrors "github.com/gocampus/campus-carpool/pkg/errors"
	"github.com/gocampus/campus-carpool/pkg/logger"
)

// RegisterVehicle handles POST /v1/vehicles
func (h *Handlers) RegisterVehicle(c *gin.Context) {
	var req dto.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	now := time.Now()
	v := &vehicle.Vehicle{
		DriverID:     req.DriverID,
		Model:        req.Model,
		PlateNumber:  req.PlateNumber,
		SeatCapacity: req.SeatCapacity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.Vehicles.Register(c.Request.Context(), v); err != nil {
		if errors.Is(err, vehicle.ErrInvalidCapacity) {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
			return
		}
		h.respondError(c, apperrors.Storage(err))
		return
	}

	h.Logger.Info("vehicle registered",
		logger.String("vehicle_id", v.ID),
		logger.String("driver_id", v.DriverID),
		logger.Int("seat_capacity", v.SeatCapacity),
	)

	c.JSON(http.StatusCreated, v)
}

// GetActiveVehicle handles GET /v1/drivers/:id/vehicle
func (h *Handlers) GetActiveVehicle(c *gin.Context) {
	v, err := h.Vehicles.ActiveVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, vehicle.ErrNoActiveVehicle) {
			h.respondError(c, apperrors.ErrVehicleNotFound)
			return
		}
		h.respondError(c, apperrors.Storage(err))
		return
	}
	c.JSON(http.StatusOK, v)
}
