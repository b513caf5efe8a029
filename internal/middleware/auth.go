package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/szlg-ftv/ftv-api/internal/models"
	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
	"github.com/szlg-ftv/ftv-api/pkg/logger"
	"github.com/szlg-ftv/ftv-api/pkg/response"
)

// ContextUserKey is the gin context key storing decoded token claims.
const ContextUserKey = "currentUser"

// RequireAuthorization rejects requests without an Authorization header.
// The dashboard backend owns real authorization, so the token is not verified
// here; Bearer JWT claims are decoded only to attribute log lines.
func RequireAuthorization() gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			claims := &models.JWTClaims{}
			if _, _, err := parser.ParseUnverified(strings.TrimSpace(parts[1]), claims); err == nil {
				c.Set(ContextUserKey, claims)
				if actor := claims.Actor(); actor != "" {
					c.Set(logger.ActorKey, actor)
				}
			}
		}

		c.Next()
	}
}
