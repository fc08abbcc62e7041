// Package merge unions multiple tables into one.
package merge

import "github.com/jgrady/scrub/pkg/scrub"

// Tables concatenates the primary table and each additional table in order.
// The result's column set is the union of all input column sets in
// first-seen order; a row from a table lacking a union column gets a
// missing cell there. No type reconciliation happens: a union column takes
// its kind from the first table that carries it.
func Tables(primary *scrub.Table, additional ...*scrub.Table) *scrub.Table {
	inputs := append([]*scrub.Table{primary}, additional...)

	var names []string
	kinds := make(map[string]scrub.Kind)
	total := 0
	for _, t := range inputs {
		total += t.Rows()
		for i := 0; i < t.Cols(); i++ {
			col := t.Column(i)
			if _, seen := kinds[col.Name()]; !seen {
				kinds[col.Name()] = col.Kind()
				names = append(names, col.Name())
			}
		}
	}

	cols := make([]scrub.Column, len(names))
	for i, name := range names {
		cells := make([]scrub.Cell, 0, total)
		for _, t := range inputs {
			if col, ok := t.ColumnByName(name); ok {
				for r := 0; r < t.Rows(); r++ {
					cells = append(cells, col.Cell(r))
				}
			} else {
				for r := 0; r < t.Rows(); r++ {
					cells = append(cells, scrub.Missing())
				}
			}
		}
		cols[i] = scrub.NewColumn(name, kinds[name], cells)
	}
	out, _ := scrub.NewTable(cols...)
	return out
}
