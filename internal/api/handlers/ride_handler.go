package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocampus/campus-carpool/internal/api/dto"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/gocampus/campus-carpool/internal/service/ridevalidator"
	"github.com/gocampus/campus-carpool/pkg/logger"
)

// CreateRide handles POST /v1/rides
func (h *Handlers) CreateRide(c *gin.Context) {
	var req dto.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.Logger.Info("ride creation requested",
		logger.String("driver_id", req.DriverID),
		logger.Time("departure_time", req.DepartureTime),
		logger.Int("seats_offered", req.SeatsOffered),
	)

	draft := ridevalidator.Draft{
		Origin: ride.Location{
			Latitude:  req.Origin.Latitude,
			Longitude: req.Origin.Longitude,
			Address:   req.Origin.Address,
		},
		Destination: ride.Location{
			Latitude:  req.Destination.Latitude,
			Longitude: req.Destination.Longitude,
			Address:   req.Destination.Address,
		},
		DepartureTime: req.DepartureTime,
		SeatsOffered:  req.SeatsOffered,
	}

	created, meta, err := h.Rides.Create(c.Request.Context(), req.DriverID, draft)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RideWithMetadataResponse{Ride: created, Metadata: meta})
}

// GetRide handles GET /v1/rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	r, err := h.Rides.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListOpenRides handles GET /v1/rides
func (h *Handlers) ListOpenRides(c *gin.Context) {
	rides, err := h.Rides.ListOpen(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// UpdateRideStatus handles PATCH /v1/rides/:id/status
func (h *Handlers) UpdateRideStatus(c *gin.Context) {
	var req dto.UpdateRideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.Rides.UpdateStatus(c.Request.Context(), c.Param("id"), req.DriverID, ride.Status(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *Handlers) CancelRide(c *gin.Context) {
	var req dto.CancelRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reason := ride.StatusDriverCancelled
	if req.Reason != "" {
		reason = ride.Status(req.Reason)
	}

	if err := h.Rides.Cancel(c.Request.Context(), c.Param("id"), req.DriverID, reason); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(reason)})
}

// ListDriverRides handles GET /v1/drivers/:id/rides
func (h *Handlers) ListDriverRides(c *gin.Context) {
	rides, err := h.Rides.ListByDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

// ListRideBookings handles GET /v1/rides/:id/bookings
func (h *Handlers) ListRideBookings(c *gin.Context) {
	driverID := c.Query("driver_id")
	if driverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": "driver_id is required"})
		return
	}

	bookings, err := h.Rides.ListBookings(c.Request.Context(), c.Param("id"), driverID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
