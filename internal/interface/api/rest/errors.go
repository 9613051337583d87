package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/domain/access"
)

// respondError writes the status for err. A file the caller may not see
// answers exactly like a file that does not exist.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, access.ErrNotFound),
		errors.Is(err, access.ErrDenied),
		errors.Is(err, access.ErrIntegrityViolation):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, access.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrLinkExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrDuplicateGrant):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrSelfGrant),
		errors.Is(err, access.ErrInvalidRole),
		errors.Is(err, access.ErrInvalidExpiry):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrStorageFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
		logger.Error(op+" error", zap.Error(err))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		logger.Error(op+" error", zap.Error(err))
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
