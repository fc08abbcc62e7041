// Package csvio reads and writes tables as CSV. The first row is the
// header; column kinds are inferred over each column's full non-empty
// value set.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jgrady/scrub/pkg/scrub"
)

// Read parses CSV into a table. Empty fields become missing cells.
func Read(r io.Reader) (*scrub.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	rows := records[1:]
	return FromRows(header, rows)
}

// FromRows builds a table from a header and raw text rows. Short records
// pad with missing cells; extra fields are ignored.
func FromRows(header []string, rows [][]string) (*scrub.Table, error) {
	cols := make([]scrub.Column, len(header))
	for c, name := range header {
		values := make([]string, len(rows))
		for r, rec := range rows {
			if c < len(rec) {
				values[r] = rec[c]
			}
		}
		kind := scrub.InferKind(values)
		cells := make([]scrub.Cell, len(values))
		for r, v := range values {
			cells[r] = scrub.ParseCell(v, kind)
		}
		cols[c] = scrub.NewColumn(name, kind, cells)
	}
	return scrub.NewTable(cols...)
}

// Write serializes a table as CSV: header row, then one row per table row,
// missing cells as empty fields. UTF-8, no byte-order mark.
func Write(w io.Writer, t *scrub.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	row := make([]string, t.Cols())
	for r := 0; r < t.Rows(); r++ {
		for c := 0; c < t.Cols(); c++ {
			row[c] = t.Cell(r, c).Format()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
