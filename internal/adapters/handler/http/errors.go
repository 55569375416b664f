package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrEntityNameEmpty,
	domain.ErrEntityNameTooLong,
	domain.ErrEntityTextTooLong,
	domain.ErrInvalidEntityType,
	domain.ErrInvalidFrequency,
	domain.ErrInvalidThreshold,
	domain.ErrInvalidRequirement,
	domain.ErrInvalidIndex,
	domain.ErrInvalidStatus,
	domain.ErrInvalidRatio,
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	case errors.Is(err, domain.ErrEntityExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return "", false
	}
	return userID, true
}

func entityTypeParam(c *gin.Context) (domain.EntityType, bool) {
	t, err := domain.ParseEntityType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return t, true
}
