package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/szlg-ftv/ftv-api/internal/models"
	appErrors "github.com/szlg-ftv/ftv-api/pkg/errors"
	"github.com/szlg-ftv/ftv-api/pkg/export"
)

const (
	reportColumnKind    = "Típus"
	reportColumnMessage = "Üzenet"
	reportTitle         = "FTV felhasználó import ellenőrzés"
	templateFilename    = "ftv_felhasznalok_minta.csv"
)

// ImportFile is a generated download.
type ImportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Report runs the preview pipeline and renders every error, warning and
// accepted user as a downloadable CSV or PDF listing.
func (s *UserImportService) Report(ctx context.Context, upload UserImportUpload, format string) (*ImportFile, error) {
	preview, err := s.Preview(ctx, upload)
	if err != nil {
		return nil, err
	}
	data := reportDataset(preview)

	switch format {
	case "", "csv":
		out, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ImportFile{Filename: "ftv_import_ellenorzes.csv", ContentType: "text/csv; charset=utf-8", Data: out}, nil
	case "pdf":
		out, err := s.pdf.Render(data, reportTitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ImportFile{Filename: "ftv_import_ellenorzes.pdf", ContentType: "application/pdf", Data: out}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Ismeretlen riport formátum: %s", format))
	}
}

// Template renders an import spreadsheet with the preferred header of every
// field and one sample row.
func (s *UserImportService) Template() (*ImportFile, error) {
	headers := make([]string, 0, len(canonicalFields))
	for _, field := range canonicalFields {
		headers = append(headers, templateHeaders[field])
	}
	sample := map[string]string{
		templateHeaders[models.FieldLastName]:      "Kovács",
		templateHeaders[models.FieldFirstName]:     "Anna",
		templateHeaders[models.FieldEmail]:         "kovacs.anna@szlg.hu",
		templateHeaders[models.FieldPhone]:         "+36301234567",
		templateHeaders[models.FieldStab]:          "A stáb",
		templateHeaders[models.FieldStartYear]:     "2023",
		templateHeaders[models.FieldTagozat]:       "F",
		templateHeaders[models.FieldRadio]:         "",
		templateHeaders[models.FieldProductionMgr]: "nem",
		templateHeaders[models.FieldMediaTeacher]:  "nem",
		templateHeaders[models.FieldClassTeacher]:  "nem",
		templateHeaders[models.FieldClasses]:       "",
	}

	out, err := s.csv.Render(export.Dataset{Headers: headers, Rows: []map[string]string{sample}})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return &ImportFile{Filename: templateFilename, ContentType: "text/csv; charset=utf-8", Data: out}, nil
}

func reportDataset(preview *models.UserImportPreview) export.Dataset {
	rows := make([]map[string]string, 0, len(preview.Outcome.Errors)+len(preview.Outcome.Warnings)+len(preview.Outcome.Users)+1)
	add := func(kind, msg string) {
		rows = append(rows, map[string]string{reportColumnKind: kind, reportColumnMessage: msg})
	}

	for _, msg := range preview.Outcome.Errors {
		add("Hiba", msg)
	}
	for _, msg := range preview.Outcome.Warnings {
		add("Figyelmeztetés", msg)
	}
	for _, user := range preview.Outcome.Users {
		add("Felhasználó", fmt.Sprintf("%s <%s>", user.FullName(), user.Email))
	}
	add("Összesen", strconv.Itoa(preview.TotalRecords())+" sor, "+strconv.Itoa(len(preview.Outcome.Users))+" érvényes")

	return export.Dataset{Headers: []string{reportColumnKind, reportColumnMessage}, Rows: rows}
}
