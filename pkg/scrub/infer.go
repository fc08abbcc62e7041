package scrub

import (
	"strconv"
	"strings"
)

// InferKind classifies a text column from its full non-empty value set:
// integer if every value parses as an integer, float if every value parses
// as a float, string otherwise. An empty value set yields KindString.
func InferKind(values []string) Kind {
	seen := false
	allInt, allFloat := true, true
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
		}
		if !allInt && !allFloat {
			return KindString
		}
	}
	switch {
	case !seen:
		return KindString
	case allInt:
		return KindInt
	case allFloat:
		return KindFloat
	default:
		return KindString
	}
}

// ParseCell converts one raw text value into a cell of the given kind.
// The empty string is the missing marker; a non-empty value that fails to
// parse under a numeric kind becomes missing.
func ParseCell(raw string, kind Kind) Cell {
	if raw == "" {
		return Missing()
	}
	switch kind {
	case KindInt:
		if x, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return Int(x)
		}
		return Missing()
	case KindFloat:
		if x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Float(x)
		}
		return Missing()
	default:
		return Str(raw)
	}
}
