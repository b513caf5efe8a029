package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/szlg-ftv/ftv-api/internal/models"
	"github.com/szlg-ftv/ftv-api/pkg/csvimport"
	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
	"github.com/szlg-ftv/ftv-api/pkg/export"
)

const (
	parseFailureHint    = "Hibás CSV formátum. Ellenőrizze a fájl szerkezetét és az elválasztó karaktert."
	encodingFailureHint = "A fájlt UTF-8 kódolással kell menteni."
	rowLimitHint        = "A fájl túl sok sort tartalmaz."
)

type importMetrics interface {
	RecordImport(result string, outcome *models.ValidationOutcome, duration time.Duration)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// UserImportUpload carries the uploaded file.
type UserImportUpload struct {
	Filename string
	Content  io.Reader
}

// UserImportConfig holds the import policy.
type UserImportConfig struct {
	MaxRows int
	// AllowPartial accepts a batch with row errors as long as one user is valid.
	AllowPartial bool
}

// UserImportService runs the CSV user import preview pipeline.
type UserImportService struct {
	rows    *RowValidator
	metrics importMetrics
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     UserImportConfig
}

// NewUserImportService constructs the service with defaults.
func NewUserImportService(rows *RowValidator, metrics importMetrics, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger, cfg UserImportConfig) (*UserImportService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rows == nil {
		var err error
		if rows, err = NewRowValidator(nil); err != nil {
			return nil, err
		}
	}
	if csv == nil {
		csv = export.NewCSVExporter(csvimport.Semicolon, true)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &UserImportService{
		rows:    rows,
		metrics: metrics,
		csv:     csv,
		pdf:     pdf,
		logger:  logger,
		cfg:     cfg,
	}, nil
}

// Preview parses, normalizes and validates an uploaded CSV without persisting anything.
// Structural failures return a CSV_PARSE_FAILED error; row problems are reported
// inside the returned preview.
func (s *UserImportService) Preview(ctx context.Context, upload UserImportUpload) (*models.UserImportPreview, error) {
	start := time.Now()
	logger := s.logger.With(zap.String("filename", upload.Filename))

	if upload.Content == nil {
		return nil, appErrors.ErrFileRequired
	}
	data, err := io.ReadAll(upload.Content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	text, err := csvimport.Decode(data)
	if err != nil {
		return nil, s.parseFailure(logger, err, start)
	}
	delimiter := csvimport.DetectDelimiter(text)
	rawRows, lines, err := csvimport.ReadRowsWithLines(text, delimiter, s.cfg.MaxRows)
	if err != nil {
		return nil, s.parseFailure(logger, err, start)
	}

	normalized := make([]models.NormalizedRow, 0, len(rawRows))
	for _, raw := range rawRows {
		normalized = append(normalized, NormalizeRow(raw))
	}
	outcome := s.rows.ValidateLines(normalized, lines)

	preview := &models.UserImportPreview{
		Delimiter: string(delimiter),
		Outcome:   outcome,
		Summary:   BuildSummary(outcome.Users),
		Preview:   BuildModelPreview(outcome.Users),
	}

	result := ImportResultAccepted
	switch {
	case len(outcome.Errors) == 0:
		preview.Accepted = true
	case s.cfg.AllowPartial && len(outcome.Users) > 0:
		preview.Accepted = true
		result = ImportResultPartial
	default:
		result = ImportResultInvalid
	}

	duration := time.Since(start)
	s.recordImport(result, &preview.Outcome, duration)
	logger.Info("user import previewed",
		zap.String("result", result),
		zap.String("delimiter", preview.Delimiter),
		zap.Int("rows", len(rawRows)),
		zap.Int("accepted", len(outcome.Users)),
		zap.Int("rejected", outcome.Rejected),
		zap.Int("skipped", outcome.Skipped),
		zap.Int("warnings", len(outcome.Warnings)),
		zap.Duration("duration", duration),
	)

	return preview, nil
}

func (s *UserImportService) parseFailure(logger *zap.Logger, err error, start time.Time) error {
	duration := time.Since(start)
	s.recordImport(ImportResultParseFailed, nil, duration)
	logger.Warn("user import parse failed", zap.Error(err), zap.Duration("duration", duration))

	details := []string{parseFailureHint}
	switch {
	case errors.Is(err, csvimport.ErrInvalidEncoding):
		details = append(details, encodingFailureHint)
	case errors.Is(err, csvimport.ErrTooManyRows):
		details = append(details, rowLimitHint)
	}
	details = append(details, err.Error())
	return appErrors.WithDetails(appErrors.ErrCSVParse, err, details...)
}

func (s *UserImportService) recordImport(result string, outcome *models.ValidationOutcome, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordImport(result, outcome, duration)
}
