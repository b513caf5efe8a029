package handler

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/szlg-ftv/ftv-api/internal/dto"
	"github.com/szlg-ftv/ftv-api/internal/models"
	"github.com/szlg-ftv/ftv-api/internal/service"
	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
	"github.com/szlg-ftv/ftv-api/pkg/response"
)

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead = 64 << 10

const validationFailedMessage = "A CSV fájl hibákat tartalmaz"

type userImportService interface {
	Preview(ctx context.Context, upload service.UserImportUpload) (*models.UserImportPreview, error)
	Report(ctx context.Context, upload service.UserImportUpload, format string) (*service.ImportFile, error)
	Template() (*service.ImportFile, error)
}

// UserImportHandler exposes the CSV user import endpoints.
type UserImportHandler struct {
	service     userImportService
	maxFileSize int64
	logger      *zap.Logger
}

// NewUserImportHandler constructs the handler. maxFileSize caps the uploaded file in bytes.
func NewUserImportHandler(svc userImportService, maxFileSize int64, logger *zap.Logger) *UserImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserImportHandler{service: svc, maxFileSize: maxFileSize, logger: logger}
}

// PreviewCSV godoc
// @Summary Preview a CSV user import
// @Description Parses, normalizes and validates an uploaded CSV without persisting anything
// @Tags UserImport
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.UserImportPreviewResponse
// @Failure 400 {object} dto.UserImportValidationFailure
// @Failure 401 {object} response.Failure
// @Failure 413 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /users/import-csv-preview [post]
func (h *UserImportHandler) PreviewCSV(c *gin.Context) {
	upload, closeFn, err := h.openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()

	preview, err := h.service.Preview(c.Request.Context(), upload)
	if err != nil {
		h.fail(c, err)
		return
	}

	outcome := preview.Outcome
	if !preview.Accepted {
		response.JSON(c, http.StatusBadRequest, dto.UserImportValidationFailure{
			Success:        false,
			Message:        validationFailedMessage,
			Errors:         outcome.Errors,
			Warnings:       outcome.Warnings,
			ValidRecords:   len(outcome.Users),
			InvalidRecords: outcome.Rejected,
			TotalRecords:   preview.TotalRecords(),
		})
		return
	}

	response.JSON(c, http.StatusOK, dto.UserImportPreviewResponse{
		Success:      true,
		Message:      fmt.Sprintf("Sikeresen feldolgozva: %d felhasználó", len(outcome.Users)),
		ParsedUsers:  outcome.Users,
		Summary:      preview.Summary,
		ModelPreview: preview.Preview,
		Errors:       outcome.Errors,
		Warnings:     outcome.Warnings,
	})
}

// Report godoc
// @Summary Download a validation report
// @Description Validates an uploaded CSV and renders the findings as CSV or PDF
// @Tags UserImport
// @Accept multipart/form-data
// @Produce text/csv
// @Produce application/pdf
// @Param file formData file true "CSV file"
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Failure
// @Failure 401 {object} response.Failure
// @Failure 413 {object} response.Failure
// @Router /users/import-csv-report [post]
func (h *UserImportHandler) Report(c *gin.Context) {
	var query dto.UserImportReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, err, "format: csv vagy pdf"))
		return
	}

	upload, closeFn, err := h.openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()

	file, err := h.service.Report(c.Request.Context(), upload, string(query.Format))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// Template godoc
// @Summary Download the import template
// @Tags UserImport
// @Produce text/csv
// @Success 200 {file} binary
// @Failure 401 {object} response.Failure
// @Router /users/import-csv-template [get]
func (h *UserImportHandler) Template(c *gin.Context) {
	file, err := h.service.Template()
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func (h *UserImportHandler) openUpload(c *gin.Context) (service.UserImportUpload, func(), error) {
	if h.maxFileSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.UserImportUpload{}, nil, appErrors.WithDetails(appErrors.ErrFileTooLarge, err)
		}
		return service.UserImportUpload{}, nil, appErrors.WithDetails(appErrors.ErrFileRequired, err)
	}
	if !isCSVUpload(header) {
		return service.UserImportUpload{}, nil, appErrors.ErrUnsupportedFile
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		return service.UserImportUpload{}, nil, appErrors.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return service.UserImportUpload{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, appErrors.ErrInternal.Message)
	}

	closeFn := func() {
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("close upload", zap.Error(cerr))
		}
	}
	return service.UserImportUpload{Filename: header.Filename, Content: file}, closeFn, nil
}

func (h *UserImportHandler) fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("user import failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("actor", claimsFromContext(c).Actor()),
		)
		_ = c.Error(err)
	}
	response.Error(c, appErr)
}

func isCSVUpload(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	return err == nil && strings.EqualFold(mediaType, "text/csv")
}
