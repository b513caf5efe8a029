package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
	"github.com/szlg-ftv/ftv-api/pkg/middleware/requestid"
	"github.com/szlg-ftv/ftv-api/pkg/response"
)

// Recovery turns panics into a generic 500 body and logs the cause with the stack.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		l.Error("panic recovered",
			zap.String("panic", fmt.Sprint(recovered)),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Value(c)),
			zap.Stack("stack"),
		)
		response.Error(c, appErrors.ErrInternal)
		c.Abort()
	})
}
