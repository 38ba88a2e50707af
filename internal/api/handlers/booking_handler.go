package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocampus/campus-carpool/internal/api/dto"
	"github.com/gocampus/campus-carpool/internal/domain/booking"
)

// CreateBooking handles POST /v1/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Bookings.Create(
		c.Request.Context(),
		req.RideID, req.PassengerID, req.Seats,
		req.PickupLocation, req.DropoffLocation,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.BookingResponse{Booking: b})
}

// GetBooking handles GET /v1/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	actorID := c.Query("actor_id")
	if actorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": "actor_id is required"})
		return
	}

	b, err := h.Bookings.Get(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BookingResponse{Booking: b})
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.Bookings.Cancel(c.Request.Context(), c.Param("id"), req.ActorID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// UpdateBookingStatus handles PATCH /v1/bookings/:id/status
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.DriverID, booking.Status(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BookingResponse{Booking: b})
}

// ListPassengerBookings handles GET /v1/passengers/:id/bookings
func (h *Handlers) ListPassengerBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListByPassenger(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
