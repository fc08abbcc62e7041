// Package jsonio reads and writes tables as JSON arrays of records. The
// column set of a read is the union of keys across all records, in
// first-seen order; output preserves column order per object.
package jsonio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jgrady/scrub/pkg/scrub"
)

type field struct {
	name  string
	value any
}

// Read parses a JSON array of objects. A record lacking a key, or carrying
// an explicit null, yields a missing cell for that column.
func Read(r io.Reader) (*scrub.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	var (
		records [][]field
		order   []string
		seen    = make(map[string]struct{})
	)
	for dec.More() {
		rec, err := readRecord(dec)
		if err != nil {
			return nil, err
		}
		for _, f := range rec {
			if _, ok := seen[f.name]; !ok {
				seen[f.name] = struct{}{}
				order = append(order, f.name)
			}
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	cols := make([]scrub.Column, len(order))
	for i, name := range order {
		values := make([]any, len(records))
		for r, rec := range records {
			for _, f := range rec {
				if f.name == name {
					values[r] = f.value
					break
				}
			}
		}
		cols[i] = buildColumn(name, values)
	}
	return scrub.NewTable(cols...)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// readRecord consumes one object token by token, preserving key order.
func readRecord(dec *json.Decoder) ([]field, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var rec []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		rec = append(rec, field{name: key, value: v})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return rec, nil
}

// buildColumn classifies a column from its decoded values and converts them
// to cells. Homogeneous booleans, integers, floats and strings map onto
// their kinds; anything mixed or structured lands in a string-kind column
// with values kept as decoded.
func buildColumn(name string, values []any) scrub.Column {
	nBool, nNum, nInt, nStr, nOther := 0, 0, 0, 0, 0
	for _, v := range values {
		switch t := v.(type) {
		case nil:
		case bool:
			nBool++
		case json.Number:
			nNum++
			if _, err := t.Int64(); err == nil {
				nInt++
			}
		case string:
			nStr++
		default:
			nOther++
		}
	}
	present := nBool + nNum + nStr + nOther

	var kind scrub.Kind
	switch {
	case present == 0:
		kind = scrub.KindString
	case nBool == present:
		kind = scrub.KindBool
	case nNum == present && nInt == nNum:
		kind = scrub.KindInt
	case nNum == present:
		kind = scrub.KindFloat
	default:
		kind = scrub.KindString
	}

	cells := make([]scrub.Cell, len(values))
	for i, v := range values {
		cells[i] = toCell(v, kind)
	}
	return scrub.NewColumn(name, kind, cells)
}

func toCell(v any, kind scrub.Kind) scrub.Cell {
	switch t := v.(type) {
	case nil:
		return scrub.Missing()
	case bool:
		return scrub.Bool(t)
	case json.Number:
		if kind == scrub.KindFloat {
			if x, err := t.Float64(); err == nil {
				return scrub.Float(x)
			}
		}
		if x, err := t.Int64(); err == nil {
			return scrub.Int(x)
		}
		if x, err := t.Float64(); err == nil {
			return scrub.Float(x)
		}
		return scrub.Str(t.String())
	case string:
		return scrub.Str(t)
	default:
		// nested arrays/objects keep their JSON text
		b, err := json.Marshal(t)
		if err != nil {
			return scrub.Missing()
		}
		return scrub.Str(string(b))
	}
}

// Write serializes a table as a pretty-printed array of objects, one per
// row, keys in column order. Missing cells render as null.
func Write(w io.Writer, t *scrub.Table) error {
	names := t.Names()
	keys := make([][]byte, len(names))
	for i, n := range names {
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		keys[i] = b
	}

	var buf []byte
	buf = append(buf, '[')
	for r := 0; r < t.Rows(); r++ {
		if r > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, "\n  {"...)
		for c := 0; c < t.Cols(); c++ {
			if c > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, "\n    "...)
			buf = append(buf, keys[c]...)
			buf = append(buf, ": "...)
			vb, err := marshalCell(t.Cell(r, c))
			if err != nil {
				return err
			}
			buf = append(buf, vb...)
		}
		buf = append(buf, "\n  }"...)
	}
	buf = append(buf, "\n]\n"...)
	_, err := w.Write(buf)
	return err
}

func marshalCell(c scrub.Cell) ([]byte, error) {
	v, ok := c.Get()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}
