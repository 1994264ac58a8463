package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Infinite-Tech-Repair/service-repair/internal/application"
	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

// BookingHandler handles the public booking and tracking endpoints.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers the public routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api")
	{
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings/:trackingId", h.TrackBooking)
	}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in bookingDomain.Intake
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"dbId":       result.ID,
		"trackingId": result.TrackingID,
		"message":    "Booking confirmed successfully",
	})
}

// TrackBooking handles GET /api/bookings/:trackingId. The identifier may be
// a tracking id or a numeric booking id.
func (h *BookingHandler) TrackBooking(c *gin.Context) {
	summary, err := h.service.TrackBooking(c.Request.Context(), c.Param("trackingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":      true,
		"trackingId": summary.TrackingID,
		"customer":   summary.CustomerName,
		"device":     summary.DeviceType,
		"status":     summary.Status,
		"date":       summary.CreatedAt,
		"updatedAt":  summary.UpdatedAt,
	})
}
