package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"profilecut/internal"
)

// ParseBatchCSV decodes a semicolon-separated batch export. The first record
// is the header row; every cell is kept as raw text. Rows shorter than the
// header leave the trailing cells absent, longer rows drop the overflow.
func ParseBatchCSV(raw []byte) (internal.Table, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return internal.Table{}, fmt.Errorf("parse batch csv: file is empty")
		}
		return internal.Table{}, fmt.Errorf("parse batch csv: %w", err)
	}

	table := internal.Table{Columns: append([]string(nil), header...)}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return internal.Table{}, fmt.Errorf("parse batch csv: %w", err)
		}
		table.Rows = append(table.Rows, recordToRow(table.Columns, record))
	}

	return table, nil
}

func recordToRow(columns []string, record []string) internal.Row {
	row := make(internal.Row, len(columns))
	for i, col := range columns {
		if i >= len(record) {
			break
		}
		row[col] = record[i]
	}
	return row
}
