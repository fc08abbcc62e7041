// Package scrub holds the in-memory tabular model and the cleaning
// pipeline that operates on it. Tables are value objects: every operation
// returns a new Table and never mutates its input.
package scrub

import "fmt"

// Column is a named, typed, ordered sequence of cells.
type Column struct {
	name  string
	kind  Kind
	cells []Cell
}

// NewColumn builds a column over the given cells. The cell slice is owned
// by the column after the call.
func NewColumn(name string, kind Kind, cells []Cell) Column {
	return Column{name: name, kind: kind, cells: cells}
}

func (c Column) Name() string    { return c.name }
func (c Column) Kind() Kind      { return c.kind }
func (c Column) Len() int        { return len(c.cells) }
func (c Column) Cell(i int) Cell { return c.cells[i] }

// WithName returns a copy of the column under a new name, sharing cells.
func (c Column) WithName(name string) Column {
	return Column{name: name, kind: c.kind, cells: c.cells}
}

// WithCells returns a copy of the column over new cells, optionally with a
// new kind.
func (c Column) WithCells(kind Kind, cells []Cell) Column {
	return Column{name: c.name, kind: kind, cells: cells}
}

// CopyCells returns a fresh slice of the column's cells.
func (c Column) CopyCells() []Cell {
	out := make([]Cell, len(c.cells))
	copy(out, c.cells)
	return out
}

// Table is an ordered set of equal-length named columns.
type Table struct {
	cols  []Column
	index map[string]int
	nrows int
}

// NewTable validates and assembles a table. All columns must have the same
// length and unique names.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{cols: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.name)
		}
		t.index[c.name] = i
		if i == 0 {
			t.nrows = c.Len()
		} else if c.Len() != t.nrows {
			return nil, fmt.Errorf("column %q has %d cells, want %d", c.name, c.Len(), t.nrows)
		}
	}
	return t, nil
}

// MustTable is NewTable for construction sites where the shape is known
// to be valid, chiefly tests.
func MustTable(cols ...Column) *Table {
	t, err := NewTable(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Rows() int { return t.nrows }
func (t *Table) Cols() int { return len(t.cols) }

// Column returns the i-th column.
func (t *Table) Column(i int) Column { return t.cols[i] }

// ColumnByName looks a column up by name.
func (t *Table) ColumnByName(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.name
	}
	return out
}

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) Cell { return t.cols[col].cells[row] }

// SelectRows builds a new table containing the given row indices, in the
// given order.
func (t *Table) SelectRows(idx []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cells := make([]Cell, len(idx))
		for j, r := range idx {
			cells[j] = c.cells[r]
		}
		cols[i] = Column{name: c.name, kind: c.kind, cells: cells}
	}
	out, _ := NewTable(cols...)
	return out
}

// RowKey encodes a full row for exact-match comparison, used by
// deduplication.
func (t *Table) RowKey(row int) string {
	n := 0
	for _, c := range t.cols {
		n += len(c.cells[row].Key()) + 1
	}
	b := make([]byte, 0, n)
	for _, c := range t.cols {
		b = append(b, c.cells[row].Key()...)
		b = append(b, 0x1f)
	}
	return string(b)
}
