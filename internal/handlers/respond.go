package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels to statuses. Forbidden is a real 403
// and conflicts are 409 (the API this replaces folded several of these into
// 404/400). Unknown errors are a 500 with a generic body; persistence
// failures are never swallowed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotConfirmed):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrSelfCollaborator),
		errors.Is(err, service.ErrAlreadyCollaborator),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}
