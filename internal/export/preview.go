package export

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/piwi3910/mazecut/internal/engine"
	"github.com/piwi3910/mazecut/internal/model"
)

const previewWidth = 12 * vg.Inch

func (c familyColor) rgba() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// ExportSheetPreview renders a sheet as a PNG: the outline of every
// placement colored by family, with its assembly labels.
func ExportSheetPreview(path string, sheet model.SheetResult, settings model.Settings) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sheet %03d", sheet.Index)
	p.X.Label.Text = "cells"
	p.Y.Label.Text = "cells"
	p.X.Min, p.X.Max = 0, float64(sheet.Width)
	p.Y.Min, p.Y.Max = 0, float64(sheet.Height)

	width := vg.Length(settings.DebugLineWidth) * vg.Inch
	legend := make(map[model.Family]bool)
	var labels plotter.XYLabels

	for _, pl := range sheet.Placements {
		for _, path := range pl.Paths {
			pts := make(plotter.XYs, 0, len(path)+1)
			for _, c := range path {
				pts = append(pts, plotter.XY{X: float64(c.X), Y: float64(c.Y)})
			}
			if len(path) > 0 {
				pts = append(pts, plotter.XY{X: float64(path[0].X), Y: float64(path[0].Y)})
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("failed to plot panel %d: %w", pl.Ordinal, err)
			}
			line.Color = familyColors[pl.Ref.Family].rgba()
			line.Width = width
			p.Add(line)
			if !legend[pl.Ref.Family] {
				legend[pl.Ref.Family] = true
				p.Legend.Add(pl.Ref.Family.String(), line)
			}
		}
		for _, l := range pl.Labels {
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(l.Position.X), Y: float64(l.Position.Y)})
			labels.Labels = append(labels.Labels, l.Text)
		}
	}

	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return fmt.Errorf("failed to plot labels: %w", err)
		}
		p.Add(l)
	}
	p.Legend.Top = true

	height := previewWidth
	if sheet.Width > 0 {
		height = previewWidth * vg.Length(sheet.Height) / vg.Length(sheet.Width)
	}
	if err := p.Save(previewWidth, height, path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// isometric projects a maze-space point onto the preview plane.
func isometric(v [3]int) plotter.XY {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return plotter.XY{
		X: (x - y) * math.Cos(math.Pi/6),
		Y: z + (x+y)*math.Sin(math.Pi/6),
	}
}

// ExportBlueprintPreview renders a blueprint as an isometric PNG, one
// color per panel family. Perforations and slots are dashed.
func ExportBlueprintPreview(path string, bp engine.Blueprint, title string) error {
	if len(bp) == 0 {
		return fmt.Errorf("empty blueprint")
	}

	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	legend := make(map[model.Family]bool)
	for _, l := range bp {
		line, err := plotter.NewLine(plotter.XYs{isometric(l.A), isometric(l.B)})
		if err != nil {
			return fmt.Errorf("failed to plot %s line: %w", l.Kind, err)
		}
		line.Color = familyColors[l.Family].rgba()
		line.Width = vg.Points(1)
		switch l.Kind {
		case engine.LinePerforation:
			line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		case engine.LineSlot:
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(1)}
		}
		p.Add(line)
		if !legend[l.Family] {
			legend[l.Family] = true
			p.Legend.Add(l.Family.String(), line)
		}
	}
	p.Legend.Top = true

	if err := p.Save(previewWidth, previewWidth, path); err != nil {
		return fmt.Errorf("failed to save blueprint preview: %w", err)
	}
	return nil
}
