package clean

import (
	"context"

	"github.com/jgrady/scrub/pkg/scrub"
)

// Replace performs exact-value find/replace per column. Only cells whose
// stored value is a string equal to the old value match; a numeric 5 never
// matches the rule "5". Columns named in the rules but absent from the
// table are skipped.
type Replace struct {
	Rules map[string]map[string]string
}

func (s *Replace) Name() string { return "find_replace" }

func (s *Replace) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	cols := make([]scrub.Column, t.Cols())
	for i := 0; i < t.Cols(); i++ {
		col := t.Column(i)
		rules, ok := s.Rules[col.Name()]
		if !ok || len(rules) == 0 {
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
			sv, isStr := v.(string)
			if !isStr {
				continue
			}
			if nv, hit := rules[sv]; hit {
				cells[r] = scrub.Str(nv)
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
