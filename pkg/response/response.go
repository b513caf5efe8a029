package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
)

// Failure is the body returned for every rejected request.
type Failure struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// JSON sends a payload with caching disabled.
func JSON(c *gin.Context, status int, body interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, body)
}

// Error sends an error response converting the error to the common structure.
// Wrapped causes are never serialized.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	errs := appErr.Details
	if len(errs) == 0 {
		errs = []string{appErr.Message}
	}
	JSON(c, appErr.Status, Failure{Success: false, Message: appErr.Message, Errors: errs})
}

// Attachment streams a generated file to the client.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}
