package gcode

import (
	"fmt"

	"github.com/piwi3910/mazecut/internal/model"
)

// MarginViolation is a cut vertex that lies inside the sheet's clear
// border or outside the sheet.
type MarginViolation struct {
	SheetIndex int
	Ordinal    int
	Family     model.Family
	X, Y       int // sheet cell
	Distance   int // cells to the nearest sheet edge, negative outside
}

// CheckMargins reports, per sheet and panel, the first cut vertex closer
// to a sheet edge than settings.Margin.
func CheckMargins(sheets []model.SheetResult, settings model.Settings) []MarginViolation {
	var violations []MarginViolation
	for _, sheet := range sheets {
		for _, p := range sheet.Placements {
			if v, ok := firstViolation(sheet, p, settings.Margin); ok {
				violations = append(violations, v)
			}
		}
	}
	return violations
}

func firstViolation(sheet model.SheetResult, p model.Placement, margin int) (MarginViolation, bool) {
	for _, path := range p.Paths {
		for _, c := range path {
			d := edgeDistance(c, sheet.Width, sheet.Height)
			if d >= margin {
				continue
			}
			return MarginViolation{
				SheetIndex: sheet.Index,
				Ordinal:    p.Ordinal,
				Family:     p.Ref.Family,
				X:          c.X,
				Y:          c.Y,
				Distance:   d,
			}, true
		}
	}
	return MarginViolation{}, false
}

// edgeDistance is the distance in cells from c to the nearest sheet edge.
func edgeDistance(c model.Coordinate, width, height int) int {
	return min(c.X, c.Y, width-c.X, height-c.Y)
}

// FormatMarginWarnings produces human-readable warning messages.
func FormatMarginWarnings(violations []MarginViolation, settings model.Settings) []string {
	var warnings []string
	for _, v := range violations {
		where := "inside the margin"
		if v.Distance < 0 {
			where = "outside the sheet"
		}
		warnings = append(warnings, fmt.Sprintf(
			"Sheet %03d: %s panel #%d cuts %s at (%.3f, %.3f) in, %d cells from the edge",
			v.SheetIndex, v.Family, v.Ordinal, where,
			float64(v.X)*settings.CellWidth, float64(v.Y)*settings.CellWidth, v.Distance,
		))
	}
	return warnings
}
