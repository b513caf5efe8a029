package csvimport

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding reports an upload that is not UTF-8 text.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Decode validates that data is UTF-8 and strips a leading byte order mark.
// No other encoding is guessed; invalid input fails with a *ParseError.
func Decode(data []byte) (string, error) {
	if offset := invalidOffset(data); offset >= 0 {
		return "", &ParseError{Err: fmt.Errorf("%w (byte offset %d)", ErrInvalidEncoding, offset)}
	}

	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return "", &ParseError{Err: err}
	}
	return string(decoded), nil
}

func invalidOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
