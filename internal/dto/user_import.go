package dto

import "github.com/szlg-ftv/ftv-api/internal/models"

// UserImportPreviewResponse is returned when every row validated.
type UserImportPreviewResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	ParsedUsers  []models.ParsedUser  `json:"parsed_users"`
	Summary      models.ImportSummary `json:"summary"`
	ModelPreview models.ModelPreview  `json:"model_preview"`
	Errors       []string             `json:"errors"`
	Warnings     []string             `json:"warnings"`
}

// UserImportValidationFailure is returned when rows failed validation.
type UserImportValidationFailure struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	ValidRecords   int      `json:"valid_records"`
	InvalidRecords int      `json:"invalid_records"`
	TotalRecords   int      `json:"total_records"`
}

// ReportFormat selects the rendering of a validation report.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// UserImportReportQuery binds the report endpoint query string.
type UserImportReportQuery struct {
	Format ReportFormat `form:"format" binding:"omitempty,oneof=csv pdf"`
}
