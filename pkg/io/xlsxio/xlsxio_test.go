package xlsxio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jgrady/scrub/pkg/io/xlsxio"
	"github.com/jgrady/scrub/pkg/scrub"
)

func TestRoundTrip(t *testing.T) {
	tbl := scrub.MustTable(
		scrub.NewColumn("name", scrub.KindString, []scrub.Cell{
			scrub.Str("Alice"), scrub.Str("Bob"), scrub.Missing(),
		}),
		scrub.NewColumn("age", scrub.KindInt, []scrub.Cell{
			scrub.Int(30), scrub.Missing(), scrub.Int(41),
		}),
	)

	var buf bytes.Buffer
	if err := xlsxio.Write(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	back, err := xlsxio.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 3 || back.Cols() != 2 {
		t.Fatalf("got %dx%d, want 3x2", back.Rows(), back.Cols())
	}
	names := back.Names()
	if names[0] != "name" || names[1] != "age" {
		t.Fatalf("header lost: %v", names)
	}
	age, _ := back.ColumnByName("age")
	if age.Kind() != scrub.KindInt {
		t.Fatalf("age kind: %v", age.Kind())
	}
	v, _ := back.Cell(0, 1).Get()
	if v != int64(30) {
		t.Fatalf("age cell: %v", v)
	}
	if !back.Cell(1, 1).IsMissing() || !back.Cell(2, 0).IsMissing() {
		t.Fatal("blank cells should read back as missing")
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := xlsxio.Read(strings.NewReader("not a zip archive")); err == nil {
		t.Fatal("non-xlsx bytes should be rejected")
	}
}
