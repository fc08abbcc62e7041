package clean

import (
	"context"
	"fmt"

	"github.com/jgrady/scrub/pkg/scrub"
)

// Rename applies an old-name to new-name mapping. Columns not named in the
// mapping keep their names. Two columns ending up under the same name is a
// hard error.
type Rename struct {
	Mapping map[string]string
}

func (s *Rename) Name() string { return "rename_columns" }

func (s *Rename) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	cols := make([]scrub.Column, t.Cols())
	taken := make(map[string]string, t.Cols())
	for i := 0; i < t.Cols(); i++ {
		col := t.Column(i)
		name := col.Name()
		if to, ok := s.Mapping[name]; ok {
			name = to
		}
		if prev, clash := taken[name]; clash {
			return nil, nil, fmt.Errorf("rename collision: %q and %q both map to %q", prev, col.Name(), name)
		}
		taken[name] = col.Name()
		cols[i] = col.WithName(name)
	}
	out, err := scrub.NewTable(cols...)
	return out, nil, err
}
