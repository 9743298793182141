package pipeline

import (
	"fmt"
	"strings"

	"profilecut/internal"
	"profilecut/internal/util"
)

const (
	hmiLabelPrefix = "204_HMI_Scheme_ProjectData_"

	// Materials whose code starts with this prefix mark the end of the
	// cutting program: the first group carrying one stops the whole export.
	stopMaterialPrefix = "FCT"

	syntheticGroupColumn = "_group"
	defaultRawLength     = "4870"
)

// columnRef is the result of resolving a semantic role against the input
// columns: either a concrete column name or unresolved.
type columnRef struct {
	name string
	ok   bool
}

// roleColumns holds the resolved source column for every field the profile
// schema reads.
type roleColumns struct {
	group    columnRef
	material columnRef
	length   columnRef
	qty      columnRef
	itemID   columnRef
}

// TransformBatchToProfile regroups a batch export into the profile table the
// machine controller loads: one label column plus one page per kept group.
// It never fails on a well-formed table; missing columns and values degrade
// to documented defaults.
func TransformBatchToProfile(src internal.Table) internal.Profile {
	tbl := normalizeTable(src)
	roles := resolveRoles(tbl.Columns)

	if !roles.group.ok {
		tbl.Columns = append(tbl.Columns, syntheticGroupColumn)
		for i := range tbl.Rows {
			tbl.Rows[i][syntheticGroupColumn] = "1"
		}
		roles.group = columnRef{name: syntheticGroupColumn, ok: true}
	}

	order, rowsByGroup := groupByFirstSeen(tbl.Rows, roles.group.name)
	kept := truncateAtStopMaterial(order, rowsByGroup, roles.material)

	maxItems := 0
	for _, g := range kept {
		if n := len(rowsByGroup[g]); n > maxItems {
			maxItems = n
		}
	}

	rows := assembleProfileRows(kept, rowsByGroup, roles, maxItems)
	rows = padToRectangle(rows)

	return internal.Profile{Rows: rows, NumPages: len(kept), MaxItems: maxItems}
}

// normalizeTable lower-cases and trims every column label and trims every
// cell, on a copy so the caller's table stays untouched. Cells are read in
// header order, so when two source headers normalize to the same name the
// rightmost column wins, every run.
func normalizeTable(src internal.Table) internal.Table {
	tbl := internal.Table{
		Columns: make([]string, len(src.Columns)),
		Rows:    make([]internal.Row, 0, len(src.Rows)),
	}
	for i, col := range src.Columns {
		tbl.Columns[i] = util.NormalizeHeader(col)
	}
	for _, row := range src.Rows {
		next := make(internal.Row, len(row))
		for i, col := range src.Columns {
			v, present := row[col]
			if !present {
				continue
			}
			next[tbl.Columns[i]] = util.TrimCell(v)
		}
		tbl.Rows = append(tbl.Rows, next)
	}
	return tbl
}

func resolveRoles(columns []string) roleColumns {
	return roleColumns{
		group:    findColumn(columns, "group"),
		material: findColumn(columns, "material"),
		length:   findColumn(columns, "length"),
		qty:      findColumn(columns, "qty"),
		itemID:   findColumn(columns, "itemid", "item_id", "item id"),
	}
}

// findColumn probes the alias list in priority order and returns the first
// alias present among the normalized columns.
func findColumn(columns []string, aliases ...string) columnRef {
	for _, alias := range aliases {
		for _, col := range columns {
			if col == alias {
				return columnRef{name: alias, ok: true}
			}
		}
	}
	return columnRef{}
}

// groupByFirstSeen partitions rows by their group cell with a single
// left-to-right scan. The returned order is first-occurrence order, which
// defines the page ordering.
func groupByFirstSeen(rows []internal.Row, groupColumn string) ([]string, map[string][]internal.Row) {
	order := []string{}
	byGroup := map[string][]internal.Row{}
	for _, row := range rows {
		key := row[groupColumn]
		if _, seen := byGroup[key]; !seen {
			order = append(order, key)
		}
		byGroup[key] = append(byGroup[key], row)
	}
	return order, byGroup
}

// truncateAtStopMaterial cuts the group order strictly before the first
// group whose first row's material starts with the stop prefix. The stop
// group and everything after it are discarded.
func truncateAtStopMaterial(order []string, byGroup map[string][]internal.Row, material columnRef) []string {
	if !material.ok {
		return order
	}
	for i, g := range order {
		rows := byGroup[g]
		if len(rows) == 0 {
			continue
		}
		mat := strings.ToUpper(rows[0][material.name])
		if strings.HasPrefix(mat, stopMaterialPrefix) {
			return order[:i]
		}
	}
	return order
}

func assembleProfileRows(kept []string, byGroup map[string][]internal.Row, roles roleColumns, maxItems int) [][]string {
	numPages := len(kept)
	rows := make([][]string, 0, 13+5*maxItems)

	header := []string{"List separator=", "Decimal symbol=."}
	for i := 2; i < numPages; i++ {
		header = append(header, "")
	}
	rows = append(rows, header)

	rows = append(rows, constantRow("Scheme Scheme", "", numPages))

	pageLabels := make([]string, numPages)
	pageIndexes := make([]string, numPages)
	for i := range pageLabels {
		pageLabels[i] = fmt.Sprintf("Page_%d", i+1)
		pageIndexes[i] = fmt.Sprintf("%d", i+1)
	}
	rows = append(rows, append([]string{"LANGID_804"}, pageLabels...))
	rows = append(rows, append([]string{"LANGID_404"}, pageLabels...))
	rows = append(rows, append([]string{"1"}, pageIndexes...))

	rows = append(rows, constantRow(hmiLabelPrefix+"BarchCode", "1", numPages))
	rows = append(rows, constantRow(hmiLabelPrefix+"EngInfo", "1", numPages))

	profileNames := make([]string, 0, numPages+1)
	profileNames = append(profileNames, hmiLabelPrefix+"ProfileName")
	for _, g := range kept {
		v, _ := cellAt(byGroup[g], 0, roles.material)
		profileNames = append(profileNames, v)
	}
	rows = append(rows, profileNames)

	rows = append(rows, constantRow(hmiLabelPrefix+"ProfileCode", "0", numPages))
	rows = append(rows, constantRow(hmiLabelPrefix+"RawLength", defaultRawLength, numPages))
	rows = append(rows, constantRow(hmiLabelPrefix+"RawHeight", "0", numPages))
	rows = append(rows, constantRow(hmiLabelPrefix+"RawWidth", "0", numPages))
	rows = append(rows, constantRow(hmiLabelPrefix+"Amount", "0", numPages))

	for k := 1; k <= maxItems; k++ {
		idx := k - 1
		rows = append(rows, performDataRow(k, "length", kept, byGroup, roles.length, idx))
		rows = append(rows, constantRow(performDataLabel(k, "angle2"), "0", numPages))
		rows = append(rows, constantRow(performDataLabel(k, "angle1"), "0", numPages))
		rows = append(rows, performDataRow(k, "quantity", kept, byGroup, roles.qty, idx))
	}

	for k := 1; k <= maxItems; k++ {
		idx := k - 1
		barcodes := []string{performDataLabel(k, "barcode")}
		for _, g := range kept {
			v, _ := cellAt(byGroup[g], idx, roles.itemID)
			barcodes = append(barcodes, v)
		}
		rows = append(rows, barcodes)
	}

	return rows
}

func performDataLabel(k int, field string) string {
	return fmt.Sprintf("%sPerformData{%d}.%s", hmiLabelPrefix, k, field)
}

// performDataRow fills one numeric per-item row. Absent rows, an unresolved
// column, and empty cells all read as "0".
func performDataRow(k int, field string, kept []string, byGroup map[string][]internal.Row, col columnRef, idx int) []string {
	out := []string{performDataLabel(k, field)}
	for _, g := range kept {
		v, ok := cellAt(byGroup[g], idx, col)
		if !ok || v == "" {
			v = "0"
		}
		out = append(out, v)
	}
	return out
}

func constantRow(label, value string, n int) []string {
	out := make([]string, 0, n+1)
	out = append(out, label)
	for i := 0; i < n; i++ {
		out = append(out, value)
	}
	return out
}

// cellAt implements the three-way cell read: the second return is false when
// the row does not exist, the column is unresolved, or the cell is absent.
func cellAt(rows []internal.Row, idx int, col columnRef) (string, bool) {
	if !col.ok || idx < 0 || idx >= len(rows) {
		return "", false
	}
	v, present := rows[idx][col.name]
	if !present {
		return "", false
	}
	return v, true
}

// padToRectangle right-pads every row with empty strings to the width of the
// widest row, so no absent cell survives into serialization.
func padToRectangle(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}
