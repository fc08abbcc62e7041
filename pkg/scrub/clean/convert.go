package clean

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jgrady/scrub/pkg/scrub"
)

// Convert coerces named columns to a target type. Conversion is best-effort
// per cell: for numeric and datetime targets a value that cannot be
// converted becomes missing; string conversion always succeeds by
// formatting. An unsupported target leaves the column unconverted and
// records a warning instead of failing the pipeline.
type Convert struct {
	Targets map[string]string
}

func (s *Convert) Name() string { return "convert_types" }

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

func (s *Convert) Apply(ctx context.Context, t *scrub.Table) (*scrub.Table, []scrub.Warning, error) {
	cols := make([]scrub.Column, t.Cols())
	var warns []scrub.Warning
	for i := 0; i < t.Cols(); i++ {
		col := t.Column(i)
		target, ok := s.Targets[col.Name()]
		if !ok {
			cols[i] = col
			continue
		}
		kind, conv, err := converter(target)
		if err != nil {
			warns = append(warns, scrub.Warning{
				Step:    s.Name(),
				Column:  col.Name(),
				Message: err.Error(),
			})
			cols[i] = col
			continue
		}
		cells := make([]scrub.Cell, col.Len())
		for r := 0; r < col.Len(); r++ {
			cells[r] = conv(col.Cell(r))
		}
		cols[i] = col.WithCells(kind, cells)
	}
	out, err := scrub.NewTable(cols...)
	return out, warns, err
}

// converter resolves a target type name to a kind and a per-cell function.
func converter(target string) (scrub.Kind, func(scrub.Cell) scrub.Cell, error) {
	switch strings.ToLower(target) {
	case "int", "integer":
		return scrub.KindInt, toInt, nil
	case "float":
		return scrub.KindFloat, toFloat, nil
	case "string", "str":
		return scrub.KindString, toString, nil
	case "datetime", "date":
		return scrub.KindTime, toTime, nil
	default:
		return scrub.KindInvalid, nil, fmt.Errorf("unsupported conversion target %q", target)
	}
}

func toInt(c scrub.Cell) scrub.Cell {
	v, ok := c.Get()
	if !ok {
		return scrub.Missing()
	}
	switch t := v.(type) {
	case int64:
		return c
	case float64:
		if float64(int64(t)) == t {
			return scrub.Int(int64(t))
		}
		return scrub.Missing()
	case string:
		if x, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return scrub.Int(x)
		}
		return scrub.Missing()
	case bool:
		if t {
			return scrub.Int(1)
		}
		return scrub.Int(0)
	default:
		return scrub.Missing()
	}
}

func toFloat(c scrub.Cell) scrub.Cell {
	v, ok := c.Get()
	if !ok {
		return scrub.Missing()
	}
	switch t := v.(type) {
	case float64:
		return c
	case int64:
		return scrub.Float(float64(t))
	case string:
		if x, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return scrub.Float(x)
		}
		return scrub.Missing()
	default:
		return scrub.Missing()
	}
}

func toString(c scrub.Cell) scrub.Cell {
	if c.IsMissing() {
		return scrub.Missing()
	}
	return scrub.Str(c.Format())
}

func toTime(c scrub.Cell) scrub.Cell {
	v, ok := c.Get()
	if !ok {
		return scrub.Missing()
	}
	switch t := v.(type) {
	case time.Time:
		return c
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if x, err := time.Parse(layout, s); err == nil {
				return scrub.Time(x)
			}
		}
		return scrub.Missing()
	default:
		return scrub.Missing()
	}
}
