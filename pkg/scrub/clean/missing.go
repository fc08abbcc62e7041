package clean

import (
	"context"

	"github.com/jgrady/scrub/pkg/scrub"
)

// DropMissing removes every row containing at least one missing cell.
type DropMissing struct{}

func (s *DropMissing) Name() string { return "drop_missing" }

func (s *DropMissing) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	keep := make([]int, 0, t.Rows())
rows:
	for r := 0; r < t.Rows(); r++ {
		for c := 0; c < t.Cols(); c++ {
			if t.Cell(r, c).IsMissing() {
				continue rows
			}
		}
		keep = append(keep, r)
	}
	if len(keep) == t.Rows() {
		return t, nil, nil
	}
	return t.SelectRows(keep), nil, nil
}

// FillMissing replaces every missing cell in the table with a single raw
// value. The value is stored as given; it is not coerced into the column's
// kind, so a string fill may land in an integer column.
type FillMissing struct {
	Value any
}

func (s *FillMissing) Name() string { return "fill_missing" }

func (s *FillMissing) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	fill := scrub.Raw(normalizeFill(s.Value))
	cols := make([]scrub.Column, t.Cols())
	for i := 0; i < t.Cols(); i++ {
		col := t.Column(i)
		cells := col.CopyCells()
		changed := false
		for r := range cells {
			if cells[r].IsMissing() {
				cells[r] = fill
				changed = true
			}
		}
		if changed {
			cols[i] = col.WithCells(col.Kind(), cells)
		} else {
			cols[i] = col
		}
	}
	out, err := scrub.NewTable(cols...)
	return out, nil, err
}

// normalizeFill maps JSON-decoded numbers onto the cell scalar set: an
// integral float64 becomes int64, everything else passes through.
func normalizeFill(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case float64:
		if float64(int64(t)) == t {
			return int64(t)
		}
		return t
	default:
		return v
	}
}
