package clean

import (
	"context"
	"strings"

	"github.com/jgrady/scrub/pkg/scrub"
)

// Trim strips leading and trailing whitespace from string-kind columns.
// Other columns are untouched, as are non-string values that ended up in a
// string column.
type Trim struct{}

func (s *Trim) Name() string { return "trim_whitespace" }

func (s *Trim) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	cols := make([]scrub.Column, t.Cols())
	for i := 0; i < t.Cols(); i++ {
		col := t.Column(i)
		if col.Kind() != scrub.KindString {
			cols[i] = col
			continue
		}
		cells := col.CopyCells()
		changed := false
		for r := range cells {
			v, present := cells[r].Get()
			if !present {
				continue
			}
			if sv, isStr := v.(string); isStr {
				trimmed := strings.TrimSpace(sv)
				if trimmed != sv {
					cells[r] = scrub.Str(trimmed)
					changed = true
				}
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
