package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/szlg-ftv/ftv-api/internal/middleware"
	"github.com/szlg-ftv/ftv-api/internal/models"
)

// claimsFromContext returns the decoded token claims, or nil for opaque tokens.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
