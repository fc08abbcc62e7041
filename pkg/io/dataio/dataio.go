// Package dataio dispatches byte payloads to the format codecs by tag.
package dataio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jgrady/scrub/pkg/io/csvio"
	"github.com/jgrady/scrub/pkg/io/jsonio"
	"github.com/jgrady/scrub/pkg/io/xlsxio"
	"github.com/jgrady/scrub/pkg/scrub"
)

// Format tags accepted by Read and Write.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// ErrUnsupportedFormat marks an unrecognized format tag on read or write.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseError marks malformed bytes for a declared format.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Format, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Supported reports whether the tag names a known format.
func Supported(format string) bool {
	switch format {
	case FormatCSV, FormatXLSX, FormatJSON:
		return true
	}
	return false
}

// Read parses raw bytes of the declared format into a table.
func Read(b []byte, format string) (*scrub.Table, error) {
	var (
		t   *scrub.Table
		err error
	)
	switch format {
	case FormatCSV:
		t, err = csvio.Read(bytes.NewReader(b))
	case FormatXLSX:
		t, err = xlsxio.Read(bytes.NewReader(b))
	case FormatJSON:
		t, err = jsonio.Read(bytes.NewReader(b))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return t, nil
}

// Write serializes a table into bytes of the requested format. Either the
// complete payload is returned or an error; no partial output.
func Write(t *scrub.Table, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV:
		err = csvio.Write(&buf, t)
	case FormatXLSX:
		err = xlsxio.Write(&buf, t)
	case FormatJSON:
		err = jsonio.Write(&buf, t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType maps a format tag to its MIME type for HTTP responses.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
