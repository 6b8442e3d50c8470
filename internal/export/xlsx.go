package export

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/mazecut/internal/model"
)

// Worksheet names of the key workbook.
const (
	KeySheetName      = "Key"
	AssemblySheetName = "Assembly"
)

var (
	keyHeaders      = []any{"Sheet", "Key", "Ordinal", "Family", "Panel", "X (cells)", "Y (cells)", "X (in)", "Y (in)", "Width (in)", "Height (in)"}
	assemblyHeaders = []any{"Ordinal", "Family", "Panel", "Sheet", "Key", "Lower-left corner", "Sections"}
)

// ExportKeyWorkbook writes the assembly key as a spreadsheet: the Key
// worksheet lists panels sheet by sheet in key order, the Assembly
// worksheet lists them in assembly order.
func ExportKeyWorkbook(path string, sheets []model.SheetResult, settings model.Settings) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), KeySheetName); err != nil {
		return fmt.Errorf("failed to name key sheet: %w", err)
	}
	if _, err := f.NewSheet(AssemblySheetName); err != nil {
		return fmt.Errorf("failed to add assembly sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	type row struct {
		sheet int
		p     model.Placement
	}
	var rows []row
	for _, s := range sheets {
		for _, p := range s.Placements {
			rows = append(rows, row{sheet: s.Index, p: p})
		}
	}

	cw := settings.CellWidth
	keyRows := make([][]any, 0, len(rows)+1)
	keyRows = append(keyRows, keyHeaders)
	for _, r := range rows {
		keyRows = append(keyRows, []any{
			r.sheet, r.p.KeyNumber, r.p.Ordinal, r.p.Ref.Family.String(), r.p.Ref.Index,
			r.p.Offset.X, r.p.Offset.Y,
			float64(r.p.Offset.X) * cw, float64(r.p.Offset.Y) * cw,
			float64(r.p.Width) * cw, float64(r.p.Height) * cw,
		})
	}

	slices.SortStableFunc(rows, func(a, b row) int { return cmp.Compare(a.p.Ordinal, b.p.Ordinal) })
	assemblyRows := make([][]any, 0, len(rows)+1)
	assemblyRows = append(assemblyRows, assemblyHeaders)
	for _, r := range rows {
		corner := fmt.Sprintf("(%s in, %s in)", model.EighthsFraction(r.p.Offset.X), model.EighthsFraction(r.p.Offset.Y))
		assemblyRows = append(assemblyRows, []any{
			r.p.Ordinal, r.p.Ref.Family.String(), r.p.Ref.Index, r.sheet, r.p.KeyNumber, corner, len(r.p.Labels),
		})
	}

	for name, data := range map[string][][]any{KeySheetName: keyRows, AssemblySheetName: assemblyRows} {
		if err := writeRows(f, name, data, bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
