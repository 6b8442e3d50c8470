// Package importer reads written cut sheets and key workbooks back so a
// finished job can be checked against the panels it was generated from.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/mazecut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Paths    []model.CutPath // sheet cells, from a DXF drawing
	Rows     []KeyRow        // from a key workbook
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced no errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// KeyRow is one panel line of a key workbook.
type KeyRow struct {
	Sheet   int
	Key     int
	Ordinal int
	Family  string
	Panel   int
}

// ColumnMapping maps key columns to their indices in a header row.
type ColumnMapping struct {
	Sheet   int
	Key     int
	Ordinal int
	Family  int
	Panel   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"sheet":   {"sheet", "page", "sheet #"},
	"key":     {"key", "key #", "key number"},
	"ordinal": {"ordinal", "order", "assembly order", "ordinal #"},
	"family":  {"family", "kind", "type"},
	"panel":   {"panel", "index", "piece"},
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive; the first matching column wins. It reports
// false when no cell of the row is a known header.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Sheet: -1, Key: -1, Ordinal: -1, Family: -1, Panel: -1}
	fields := map[string]*int{
		"sheet":   &mapping.Sheet,
		"key":     &mapping.Key,
		"ordinal": &mapping.Ordinal,
		"family":  &mapping.Family,
		"panel":   &mapping.Panel,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *fields[role] == -1 {
					*fields[role] = i
					isHeader = true
				}
			}
		}
	}
	return mapping, isHeader
}

func (m ColumnMapping) missing() []string {
	var out []string
	for _, c := range []struct {
		name string
		idx  int
	}{{"Sheet", m.Sheet}, {"Key", m.Key}, {"Ordinal", m.Ordinal}, {"Family", m.Family}, {"Panel", m.Panel}} {
		if c.idx == -1 {
			out = append(out, c.name)
		}
	}
	return out
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, m ColumnMapping, rowLabel string) (KeyRow, string) {
	r := KeyRow{Family: strings.ToLower(getCell(row, m.Family))}
	for _, f := range []struct {
		name string
		idx  int
		dst  *int
		min  int
	}{
		{"sheet", m.Sheet, &r.Sheet, 1},
		{"key", m.Key, &r.Key, 1},
		{"ordinal", m.Ordinal, &r.Ordinal, 1},
		{"panel", m.Panel, &r.Panel, 0},
	} {
		s := getCell(row, f.idx)
		if s == "" {
			return KeyRow{}, fmt.Sprintf("%s: Missing %s value", rowLabel, f.name)
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < f.min {
			return KeyRow{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, f.name, s)
		}
		*f.dst = n
	}
	if r.Family == "" {
		return KeyRow{}, fmt.Sprintf("%s: Missing family value", rowLabel)
	}
	return r, ""
}

// ImportKeyWorkbook reads the panel rows of a key workbook. The worksheet
// named "Key" is read when present, otherwise the first one. The first row
// must be a header naming at least the sheet, key, ordinal, family and
// panel columns.
func ImportKeyWorkbook(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	name := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, "Key") {
			name = s
			break
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	mapping, ok := DetectColumns(rows[0])
	if !ok {
		result.Errors = append(result.Errors, "No header row found")
		return result
	}
	if missing := mapping.missing(); len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
		return result
	}

	for i := 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		row, errMsg := parseRow(rows[i], mapping, fmt.Sprintf("Row %d", i+1))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	if len(result.Rows) == 0 && len(result.Errors) == 0 {
		result.Warnings = append(result.Warnings, "Workbook lists no panels")
	}
	return result
}

// VerifyKey compares key rows with the placements of sheets and describes
// every difference. An empty result means they agree.
func VerifyKey(rows []KeyRow, sheets []model.SheetResult) []string {
	type id struct{ sheet, key int }
	want := make(map[id]model.Placement)
	for _, s := range sheets {
		for _, p := range s.Placements {
			want[id{s.Index, p.KeyNumber}] = p
		}
	}

	var problems []string
	seen := make(map[id]bool)
	for _, r := range rows {
		k := id{r.Sheet, r.Key}
		if seen[k] {
			problems = append(problems, fmt.Sprintf("sheet %d key %d listed twice", r.Sheet, r.Key))
			continue
		}
		seen[k] = true
		p, ok := want[k]
		if !ok {
			problems = append(problems, fmt.Sprintf("sheet %d key %d is not on the sheet", r.Sheet, r.Key))
			continue
		}
		if p.Ordinal != r.Ordinal || p.Ref.Family.String() != r.Family || p.Ref.Index != r.Panel {
			problems = append(problems, fmt.Sprintf("sheet %d key %d: expected %s panel %d ordinal %d, found %s panel %d ordinal %d",
				r.Sheet, r.Key, p.Ref.Family, p.Ref.Index, p.Ordinal, r.Family, r.Panel, r.Ordinal))
		}
	}
	for _, s := range sheets {
		for _, p := range s.Placements {
			if !seen[id{s.Index, p.KeyNumber}] {
				problems = append(problems, fmt.Sprintf("sheet %d key %d is missing", s.Index, p.KeyNumber))
			}
		}
	}
	return problems
}
