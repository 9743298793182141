package pipeline

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"profilecut/internal"
)

// ParseBatchXLSX decodes a batch export from the first sheet of a workbook.
// The first row is the header; all cells are read as display text.
func ParseBatchXLSX(raw []byte) (internal.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return internal.Table{}, fmt.Errorf("parse batch xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.Table{}, fmt.Errorf("parse batch xlsx: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return internal.Table{}, fmt.Errorf("parse batch xlsx: %w", err)
	}
	if len(rows) == 0 {
		return internal.Table{}, fmt.Errorf("parse batch xlsx: sheet %q is empty", sheets[0])
	}

	table := internal.Table{Columns: append([]string(nil), rows[0]...)}
	for _, record := range rows[1:] {
		table.Rows = append(table.Rows, recordToRow(table.Columns, record))
	}

	return table, nil
}
