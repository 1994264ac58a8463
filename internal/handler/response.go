package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Infinite-Tech-Repair/service-repair/internal/domain"
)

// respondError maps an application error onto the HTTP status and the
// structured error payload. Validation and not-found errors carry the domain
// message; anything else is reported as a generic server error with the
// message in details.
func respondError(c *gin.Context, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		appErr = domain.NewInternalError("internal server error", err)
	}

	switch appErr.Code {
	case domain.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	case domain.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
	case domain.CodeConflict:
		// Tracking-id collisions are a server-side weakness of the random
		// id scheme, not a client mistake.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database insertion failed", "details": appErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parsePagination extracts limit and offset query parameters. Values are
// passed through as-is; the search engine clamps them.
func parsePagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 0
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}
	return limit, offset
}
