package scrub_test

import (
	"testing"

	"github.com/jgrady/scrub/pkg/scrub"
)

func TestNewTableValidation(t *testing.T) {
	a := scrub.NewColumn("a", scrub.KindInt, []scrub.Cell{scrub.Int(1), scrub.Int(2)})
	short := scrub.NewColumn("b", scrub.KindInt, []scrub.Cell{scrub.Int(3)})
	if _, err := scrub.NewTable(a, short); err == nil {
		t.Fatal("expected error for mismatched column lengths")
	}

	dup := scrub.NewColumn("a", scrub.KindString, []scrub.Cell{scrub.Str("x"), scrub.Str("y")})
	if _, err := scrub.NewTable(a, dup); err == nil {
		t.Fatal("expected error for duplicate column names")
	}

	b := scrub.NewColumn("b", scrub.KindString, []scrub.Cell{scrub.Str("x"), scrub.Missing()})
	tbl, err := scrub.NewTable(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Rows() != 2 || tbl.Cols() != 2 {
		t.Fatalf("got %dx%d, want 2x2", tbl.Rows(), tbl.Cols())
	}
	if !tbl.Cell(1, 1).IsMissing() {
		t.Fatal("cell (1,b) should be missing")
	}
}

func TestCellEquality(t *testing.T) {
	if !scrub.Missing().Equal(scrub.Missing()) {
		t.Fatal("missing should equal missing")
	}
	if scrub.Missing().Equal(scrub.Int(0)) {
		t.Fatal("missing should not equal zero")
	}
	if scrub.Int(5).Equal(scrub.Str("5")) {
		t.Fatal("int 5 should not equal string 5")
	}
	if scrub.Int(5).Key() == scrub.Str("5").Key() {
		t.Fatal("keys of int 5 and string 5 should differ")
	}
	if scrub.Int(5).Key() == scrub.Float(5).Key() {
		t.Fatal("keys of int 5 and float 5 should differ")
	}
}

func TestSelectRowsPreservesOrder(t *testing.T) {
	col := scrub.NewColumn("x", scrub.KindInt, []scrub.Cell{
		scrub.Int(10), scrub.Int(20), scrub.Int(30), scrub.Int(40),
	})
	tbl := scrub.MustTable(col)
	out := tbl.SelectRows([]int{0, 2, 3})
	if out.Rows() != 3 {
		t.Fatalf("got %d rows, want 3", out.Rows())
	}
	want := []int64{10, 30, 40}
	for i, w := range want {
		v, _ := out.Cell(i, 0).Get()
		if v != w {
			t.Fatalf("row %d: got %v, want %d", i, v, w)
		}
	}
	// source table untouched
	if tbl.Rows() != 4 {
		t.Fatalf("source mutated: %d rows", tbl.Rows())
	}
}

func TestInferKind(t *testing.T) {
	cases := []struct {
		values []string
		want   scrub.Kind
	}{
		{[]string{"1", "2", "3"}, scrub.KindInt},
		{[]string{"1", "2.5"}, scrub.KindFloat},
		{[]string{"1e3", "2"}, scrub.KindFloat},
		{[]string{"1", "", "3"}, scrub.KindInt},
		{[]string{"a", "2"}, scrub.KindString},
		{[]string{"", ""}, scrub.KindString},
		{nil, scrub.KindString},
	}
	for _, c := range cases {
		if got := scrub.InferKind(c.values); got != c.want {
			t.Fatalf("InferKind(%v) = %v, want %v", c.values, got, c.want)
		}
	}
}
