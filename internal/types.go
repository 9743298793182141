package internal

type InputFormat string

const (
	FormatCSV  InputFormat = "csv"
	FormatXLSX InputFormat = "xlsx"
)

// Row maps a normalized column name to a text cell. A missing key means the
// source row had no cell in that column, which is distinct from an empty
// string cell.
type Row map[string]string

// Table is an ordered tabular dataset with every value held as text.
type Table struct {
	Columns []string
	Rows    []Row
}

// Clone returns a deep copy so callers can normalize a table without
// touching the original.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Rows = append(out.Rows, dup)
	}
	return out
}

// Head returns a copy of the table truncated to the first n rows.
func (t Table) Head(n int) Table {
	head := t.Clone()
	if n < 0 {
		n = 0
	}
	if n < len(head.Rows) {
		head.Rows = head.Rows[:n]
	}
	return head
}

// Profile is the fixed-schema machine table: one label column plus one
// column per kept group ("page"). Rows is rectangular after assembly.
type Profile struct {
	Rows     [][]string
	NumPages int
	MaxItems int
}

// Width is the column count of the assembled profile, label column included.
func (p Profile) Width() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return len(p.Rows[0])
}
