package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Infinite-Tech-Repair/service-repair/internal/application"
)

// AdminHandler handles the admin booking-management endpoints.
type AdminHandler struct {
	service *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *application.BookingService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers the admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.PATCH("/bookings/:id/status", h.UpdateStatus)
		admin.POST("/bookings/:id/archive", h.ArchiveBooking)
		admin.GET("/archived-bookings", h.ListArchivedBookings)
	}
}

// ListBookings handles GET /api/admin/bookings. Without q it pages the
// active partition; with q it searches across both partitions.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	limit, offset := parsePagination(c)

	page, err := h.service.ListBookings(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateStatus handles PATCH /api/admin/bookings/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated successfully",
		"data":    result,
	})
}

// ArchiveBooking handles POST /api/admin/bookings/:id/archive.
func (h *AdminHandler) ArchiveBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if _, err := h.service.ArchiveBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking archived successfully",
	})
}

// ListArchivedBookings handles GET /api/admin/archived-bookings.
func (h *AdminHandler) ListArchivedBookings(c *gin.Context) {
	limit, offset := parsePagination(c)

	page, err := h.service.ListArchivedBookings(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
