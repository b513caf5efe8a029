package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szlg-ftv/ftv-api/internal/dto"
	"github.com/szlg-ftv/ftv-api/internal/models"
	"github.com/szlg-ftv/ftv-api/internal/service"
	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
	"github.com/szlg-ftv/ftv-api/pkg/response"
)

type userImportServiceMock struct {
	preview    *models.UserImportPreview
	previewErr error
	report     *service.ImportFile
	reportErr  error
	template   *service.ImportFile

	calls      int
	lastFormat string
	lastBody   string
}

func (m *userImportServiceMock) Preview(ctx context.Context, upload service.UserImportUpload) (*models.UserImportPreview, error) {
	m.calls++
	data, _ := io.ReadAll(upload.Content)
	m.lastBody = string(data)
	return m.preview, m.previewErr
}

func (m *userImportServiceMock) Report(ctx context.Context, upload service.UserImportUpload, format string) (*service.ImportFile, error) {
	m.calls++
	m.lastFormat = format
	return m.report, m.reportErr
}

func (m *userImportServiceMock) Template() (*service.ImportFile, error) {
	return m.template, nil
}

func newUploadContext(t *testing.T, target, filename, contentType, content string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		partHeader := textproto.MIMEHeader{}
		partHeader.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		partHeader.Set("Content-Type", contentType)
		part, err := writer.CreatePart(partHeader)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("note", "no file"))
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Token abc")
	c.Request = req
	return c, w
}

func acceptedPreview() *models.UserImportPreview {
	return &models.UserImportPreview{
		Delimiter: ";",
		Outcome: models.ValidationOutcome{
			Users:    []models.ParsedUser{{VezetekNev: "Kovács", KeresztNev: "Anna", Email: "anna@example.com", Osztalyai: []string{}}},
			Errors:   []string{},
			Warnings: []string{"2. sor: Kovács Anna: Nincs telefonszám megadva"},
		},
		Summary:  models.ImportSummary{TotalUsers: 1},
		Preview:  models.ModelPreview{Stabs: []string{}, RadioStabs: []string{}, Classes: []string{}, ClassTeacherAssignments: []string{}},
		Accepted: true,
	}
}

func TestUserImportHandlerPreviewSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userImportServiceMock{preview: acceptedPreview()}
	h := NewUserImportHandler(mockSvc, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-preview", "users.csv", "text/csv", "Vezetéknév;Keresztnév\n")
	h.PreviewCSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.UserImportPreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.ParsedUsers, 1)
	assert.Equal(t, 1, body.Summary.TotalUsers)
	assert.NotNil(t, body.Errors)
	assert.Empty(t, body.Errors)
	assert.Len(t, body.Warnings, 1)
	assert.Equal(t, "Vezetéknév;Keresztnév\n", mockSvc.lastBody)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestUserImportHandlerPreviewValidationFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	preview := acceptedPreview()
	preview.Accepted = false
	preview.Outcome.Errors = []string{"3. sor: Email cím hiányzik"}
	preview.Outcome.Rejected = 1
	h := NewUserImportHandler(&userImportServiceMock{preview: preview}, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-preview", "users.CSV", "application/vnd.ms-excel", "x")
	h.PreviewCSV(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body dto.UserImportValidationFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, []string{"3. sor: Email cím hiányzik"}, body.Errors)
	assert.Equal(t, 1, body.ValidRecords)
	assert.Equal(t, 1, body.InvalidRecords)
	assert.Equal(t, 2, body.TotalRecords)
}

func TestUserImportHandlerPreviewRejectsUploads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name        string
		filename    string
		contentType string
		content     string
		status      int
	}{
		{name: "missing file", status: http.StatusBadRequest},
		{name: "not csv", filename: "users.xlsx", contentType: "application/octet-stream", content: "x", status: http.StatusBadRequest},
		{name: "too large", filename: "users.csv", contentType: "text/csv", content: strings.Repeat("a", 64), status: http.StatusRequestEntityTooLarge},
		{name: "body over read limit", filename: "users.csv", contentType: "text/csv", content: strings.Repeat("a", 200<<10), status: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &userImportServiceMock{preview: acceptedPreview()}
			h := NewUserImportHandler(mockSvc, 32, nil)

			c, w := newUploadContext(t, "/users/import-csv-preview", tc.filename, tc.contentType, tc.content)
			h.PreviewCSV(c)

			require.Equal(t, tc.status, w.Code)
			assert.Zero(t, mockSvc.calls)
			var body response.Failure
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Errors)
		})
	}
}

func TestUserImportHandlerAcceptsCSVMimeWithOtherExtension(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userImportServiceMock{preview: acceptedPreview()}
	h := NewUserImportHandler(mockSvc, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-preview", "export.txt", "text/csv; charset=utf-8", "x")
	h.PreviewCSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockSvc.calls)
}

func TestUserImportHandlerPreviewParseFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parseErr := appErrors.WithDetails(appErrors.ErrCSVParse, errors.New("bare quote"), "hint", "line 3: bare quote")
	h := NewUserImportHandler(&userImportServiceMock{previewErr: parseErr}, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-preview", "users.csv", "text/csv", "x")
	h.PreviewCSV(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CSV parsing failed", body.Message)
	assert.Equal(t, []string{"hint", "line 3: bare quote"}, body.Errors)
}

func TestUserImportHandlerPreviewInternalFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserImportHandler(&userImportServiceMock{previewErr: errors.New("disk on fire")}, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-preview", "users.csv", "text/csv", "x")
	h.PreviewCSV(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestUserImportHandlerReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userImportServiceMock{report: &service.ImportFile{Filename: "report.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}}
	h := NewUserImportHandler(mockSvc, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-report?format=pdf", "users.csv", "text/csv", "x")
	h.Report(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf", mockSvc.lastFormat)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report.pdf")
}

func TestUserImportHandlerReportRejectsFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userImportServiceMock{}
	h := NewUserImportHandler(mockSvc, 1024, nil)

	c, w := newUploadContext(t, "/users/import-csv-report?format=xlsx", "users.csv", "text/csv", "x")
	h.Report(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockSvc.calls)
}

func TestUserImportHandlerTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserImportHandler(&userImportServiceMock{template: &service.ImportFile{
		Filename:    "ftv_felhasznalok_minta.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Vezetéknév;Keresztnév\n"),
	}}, 1024, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/import-csv-template", nil)
	h.Template(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ftv_felhasznalok_minta.csv")
	assert.Equal(t, "Vezetéknév;Keresztnév\n", w.Body.String())
}

func TestMetricsHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(service.NewMetricsService())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics/summary", nil)
	h.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	var snapshot models.ImportMetricsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Zero(t, snapshot.PreviewsTotal)
}
