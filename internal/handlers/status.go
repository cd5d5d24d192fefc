package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/logger"
)

func statusFromError(err error) int {
	var ve domain.ValidationError
	var ise *domain.InsufficientStockError
	switch {
	case errors.As(err, &ve), errors.As(err, &ise):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountDisabled), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
