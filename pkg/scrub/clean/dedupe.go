package clean

import (
	"context"

	"github.com/jgrady/scrub/pkg/scrub"
)

// Dedupe removes rows that exactly match an earlier row in every column,
// missing cells included. The first occurrence survives and row order is
// preserved.
type Dedupe struct{}

func (s *Dedupe) Name() string { return "remove_duplicates" }

func (s *Dedupe) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	seen := make(map[string]struct{}, t.Rows())
	keep := make([]int, 0, t.Rows())
	for r := 0; r < t.Rows(); r++ {
		k := t.RowKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, r)
	}
	if len(keep) == t.Rows() {
		return t, nil, nil
	}
	return t.SelectRows(keep), nil, nil
}
