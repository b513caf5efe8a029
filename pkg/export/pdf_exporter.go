package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; the cp1250 table keeps Hungarian letters readable.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := columnWidths(len(data.Headers), 190.0)
	pdf.SetFont("Arial", "B", 10)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	_, pageHeight := pdf.GetPageSize()
	left, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		cells := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			cells[i] = tr(row[header])
		}
		wrapped := wrapCells(pdf, cells, widths)
		height := rowHeight(wrapped)
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
		}

		x, y := left, pdf.GetY()
		for i, lines := range wrapped {
			pdf.Rect(x, y, widths[i], height, "D")
			for n, line := range lines {
				pdf.SetXY(x, y+cellPadding+float64(n)*lineHeight)
				pdf.CellFormat(widths[i], lineHeight, string(line), "", 0, "L", false, 0, "")
			}
			x += widths[i]
		}
		pdf.SetXY(left, y+height)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

const (
	lineHeight  = 5.0
	cellPadding = 1.0
)

// wrapCells splits every cell into lines that fit its column using the current font.
func wrapCells(pdf *gofpdf.Fpdf, cells []string, widths []float64) [][][]byte {
	wrapped := make([][][]byte, len(cells))
	for i, cell := range cells {
		lines := pdf.SplitLines([]byte(cell), widths[i]-2*cellPadding)
		if len(lines) == 0 {
			lines = [][]byte{{}}
		}
		wrapped[i] = lines
	}
	return wrapped
}

func rowHeight(wrapped [][][]byte) float64 {
	maxLines := 1
	for _, lines := range wrapped {
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	return float64(maxLines)*lineHeight + 2*cellPadding
}

// columnWidths gives the first column a narrow label slot when there are two
// columns and splits evenly otherwise.
func columnWidths(n int, total float64) []float64 {
	widths := make([]float64, n)
	if n == 2 {
		widths[0] = total * 0.25
		widths[1] = total * 0.75
		return widths
	}
	for i := range widths {
		widths[i] = total / float64(n)
	}
	return widths
}
