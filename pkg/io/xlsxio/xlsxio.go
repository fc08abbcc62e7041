// Package xlsxio reads and writes tables as single-sheet XLSX workbooks.
package xlsxio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jgrady/scrub/pkg/io/csvio"
	"github.com/jgrady/scrub/pkg/scrub"
)

// Read parses the first sheet of a workbook. The first row is the header;
// cells arrive as text and go through the same kind inference as CSV.
func Read(r io.Reader) (*scrub.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return csvio.FromRows(rows[0], rows[1:])
}

// Write serializes a table as a single-sheet workbook: header row plus data
// rows, missing cells left blank.
func Write(w io.Writer, t *scrub.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for c, name := range t.Names() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for r := 0; r < t.Rows(); r++ {
		for c := 0; c < t.Cols(); c++ {
			v, ok := t.Cell(r, c).Get()
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}
