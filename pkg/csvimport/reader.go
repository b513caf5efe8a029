package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RawRow maps a header cell of the first line to the cell value of one data line.
// Cells missing from a short line are absent from the map.
type RawRow map[string]string

// ErrTooManyRows is returned when a file exceeds the configured row limit.
var ErrTooManyRows = errors.New("too many rows")

// ParseError reports a structural problem with the whole file.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		var csvErr *csv.ParseError
		if errors.As(e.Err, &csvErr) {
			return csvErr.Error()
		}
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadRows reads text with the given delimiter. The first record is the header;
// each later record becomes one RawRow in file order. maxRows <= 0 disables the
// row limit.
func ReadRows(text string, delim rune, maxRows int) ([]RawRow, error) {
	rows, _, err := ReadRowsWithLines(text, delim, maxRows)
	return rows, err
}

// ReadRowsWithLines is ReadRows that also reports, for every row, the 1-based
// file line its record starts on. Empty lines are skipped by the reader, so
// lines are not always consecutive.
func ReadRowsWithLines(text string, delim rune, maxRows int) ([]RawRow, []int, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, wrapReadError(err)
	}

	var (
		rows  []RawRow
		lines []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, wrapReadError(err)
		}
		line, _ := reader.FieldPos(0)
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, nil, &ParseError{Line: line, Err: fmt.Errorf("%w: limit is %d", ErrTooManyRows, maxRows)}
		}

		row := make(RawRow, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
		lines = append(lines, line)
	}

	return rows, lines, nil
}

func wrapReadError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: err}
	}
	return &ParseError{Err: err}
}
