package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/mazecut/internal/model"
)

// DXF layer names written for every sheet.
const (
	LayerCut    = "CUT"
	LayerLabels = "LABELS"
)

// ExportDXF writes a sheet as a DXF drawing in inches. Each polyline of
// the sheet becomes one LWPOLYLINE on the CUT layer, each label a TEXT
// entity on the LABELS layer. Closed polylines repeat their first vertex.
func ExportDXF(path string, sheet model.SheetResult, settings model.Settings) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerCut, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerCut, err)
	}
	if _, err := d.AddLayer(LayerLabels, color.Blue, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerLabels, err)
	}

	cw := settings.CellWidth
	for _, line := range sheet.Polylines() {
		vertices := make([][]float64, len(line))
		for i, c := range line {
			vertices[i] = []float64{float64(c.X) * cw, float64(c.Y) * cw}
		}
		if _, err := d.LwPolyline(false, vertices...); err != nil {
			return fmt.Errorf("failed to add polyline: %w", err)
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return fmt.Errorf("failed to switch to layer %s: %w", LayerLabels, err)
	}
	height := float64(settings.FontSize) * cw
	for _, p := range sheet.Placements {
		for _, l := range p.Labels {
			if _, err := d.Text(l.Text, float64(l.Position.X)*cw, float64(l.Position.Y)*cw, 0, height); err != nil {
				return fmt.Errorf("failed to add label %q: %w", l.Text, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
