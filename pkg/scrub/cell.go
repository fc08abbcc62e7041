package scrub

import (
	"strconv"
	"time"
)

// Kind enumerates the canonical column types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "datetime"
	default:
		return "invalid"
	}
}

// Numeric reports whether columns of this kind carry numeric statistics.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Cell is one row's value in one column: a scalar or the missing marker.
// A zero Cell is missing. Stored scalars are one of int64, float64, string,
// bool or time.Time; a column's kind is a classification, not a per-cell
// guarantee, so a cell may hold a value of another type (e.g. after a raw
// fill).
type Cell struct {
	v any
}

func Missing() Cell         { return Cell{} }
func Int(v int64) Cell      { return Cell{v: v} }
func Float(v float64) Cell  { return Cell{v: v} }
func Str(v string) Cell     { return Cell{v: v} }
func Bool(v bool) Cell      { return Cell{v: v} }
func Time(v time.Time) Cell { return Cell{v: v} }

// Raw wraps an arbitrary scalar without coercion. nil yields a missing cell.
func Raw(v any) Cell { return Cell{v: v} }

func (c Cell) IsMissing() bool { return c.v == nil }

// Get returns the stored scalar and whether the cell holds one.
func (c Cell) Get() (any, bool) { return c.v, c.v != nil }

// Equal compares two cells by value. Missing equals only missing.
func (c Cell) Equal(o Cell) bool {
	if c.v == nil || o.v == nil {
		return c.v == nil && o.v == nil
	}
	if ct, ok := c.v.(time.Time); ok {
		ot, ok := o.v.(time.Time)
		return ok && ct.Equal(ot)
	}
	return c.v == o.v
}

// Key returns a canonical string encoding of the cell, used for hashing
// rows and counting distinct values. Distinct scalars of different types
// never collide.
func (c Cell) Key() string {
	switch v := c.v.(type) {
	case nil:
		return "\x00"
	case bool:
		if v {
			return "b1"
		}
		return "b0"
	case int64:
		return "i" + strconv.FormatInt(v, 10)
	case float64:
		return "f" + strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return "s" + v
	case time.Time:
		return "t" + strconv.FormatInt(v.UnixNano(), 10)
	default:
		return "?" + formatScalar(v)
	}
}

// formatScalar renders a cell scalar as text, the way writers and string
// conversion do.
func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Format renders the cell as text; missing renders as the empty string.
func (c Cell) Format() string {
	if c.v == nil {
		return ""
	}
	return formatScalar(c.v)
}
