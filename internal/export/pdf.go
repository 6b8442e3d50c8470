// Package export writes packed cut sheets to files: DXF and G-code for the
// laser, PDF pages, QR-coded panel labels, previews and the assembly key.
package export

import (
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/mazecut/internal/model"
)

// familyColor represents an RGB color for a panel family.
type familyColor struct {
	R, G, B int
}

// familyColors is shared by the PDF pages and the PNG previews.
var familyColors = map[model.Family]familyColor{
	model.FamilyTetris: {R: 33, G: 150, B: 243}, // blue
	model.FamilyLayer:  {R: 76, G: 175, B: 80},  // green
	model.FamilySide:   {R: 255, G: 152, B: 0},  // orange
}

// pointsPerInch converts inches to PDF font points.
const pointsPerInch = 72.0

// ExportPDF writes one page per sheet at true size, in inches: the cut
// paths as hairlines and the assembly labels. A summary page follows.
func ExportPDF(path string, sheets []model.SheetResult, settings model.Settings) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := newSheetPDF(sheets[0], settings)
	for _, sheet := range sheets {
		pdf.AddPageFormat("P", sheetSize(sheet, settings))
		renderSheetPage(pdf, sheet, settings)
	}
	pdf.AddPageFormat("P", sheetSize(sheets[0], settings))
	renderSummaryPage(pdf, sheets, settings)

	return pdf.OutputFileAndClose(path)
}

// ExportSheetPDF writes a single sheet as its own document.
func ExportSheetPDF(path string, sheet model.SheetResult, settings model.Settings) error {
	pdf := newSheetPDF(sheet, settings)
	pdf.AddPage()
	renderSheetPage(pdf, sheet, settings)
	return pdf.OutputFileAndClose(path)
}

func sheetSize(sheet model.SheetResult, settings model.Settings) fpdf.SizeType {
	return fpdf.SizeType{
		Wd: float64(sheet.Width) * settings.CellWidth,
		Ht: float64(sheet.Height) * settings.CellWidth,
	}
}

func newSheetPDF(sheet model.SheetResult, settings model.Settings) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           sheetSize(sheet, settings),
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return pdf
}

// renderSheetPage draws a sheet on the current page. Sheet cell (x, y)
// counts from the lower-left corner; the page counts from the top.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetResult, settings model.Settings) {
	cw := settings.CellWidth
	height := float64(sheet.Height) * cw
	px := func(c model.Coordinate) (float64, float64) {
		return float64(c.X) * cw, height - float64(c.Y)*cw
	}

	pdf.SetDrawColor(255, 0, 0)
	pdf.SetLineWidth(settings.LineWidth)
	for _, line := range sheet.Polylines() {
		for i := 0; i+1 < len(line); i++ {
			x1, y1 := px(line[i])
			x2, y2 := px(line[i+1])
			pdf.Line(x1, y1, x2, y2)
		}
	}

	// Labels are engraved, not cut
	pdf.SetFont("Helvetica", "", float64(settings.FontSize)*cw*pointsPerInch)
	pdf.SetTextColor(0, 0, 255)
	for _, p := range sheet.Placements {
		for _, l := range p.Labels {
			x, y := px(l.Position)
			pdf.Text(x, y, l.Text)
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage lists every sheet with its panels and usage.
func renderSummaryPage(pdf *fpdf.Fpdf, sheets []model.SheetResult, settings model.Settings) {
	const margin = 0.5
	pdf.SetXY(margin, margin)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(6, 0.4, "Cut Sheet Summary", "", 1, "L", false, 0, "")

	y := margin + 0.6
	colWidths := []float64{0.8, 1.0, 1.6, 1.2, 1.2}
	headers := []string{"Sheet", "Panels", "Size (in)", "Usage", "Keys"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	x := margin
	for i, header := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 0.25, header, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 0.25

	pdf.SetFont("Helvetica", "", 10)
	for i, sheet := range sheets {
		keys := "-"
		if n := len(sheet.Placements); n > 0 {
			keys = strconv.Itoa(sheet.Placements[0].KeyNumber) + " - " + strconv.Itoa(sheet.Placements[n-1].KeyNumber)
		}
		row := []string{
			fmt.Sprintf("%03d", sheet.Index),
			strconv.Itoa(len(sheet.Placements)),
			fmt.Sprintf("%.2f x %.2f", float64(sheet.Width)*settings.CellWidth, float64(sheet.Height)*settings.CellWidth),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			keys,
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = margin
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 0.25, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 0.25
	}

	// Family legend
	y += 0.3
	pdf.SetFont("Helvetica", "", 9)
	for _, f := range []model.Family{model.FamilyLayer, model.FamilySide, model.FamilyTetris} {
		col := familyColors[f]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(margin, y+0.05, 0.15, 0.15, "F")
		pdf.SetXY(margin+0.2, y)
		pdf.CellFormat(2, 0.25, f.String()+" panels", "", 0, "L", false, 0, "")
		y += 0.25
	}
}

// ExportInstructionsPDF writes the assembly instructions on Letter pages
// in a monospaced font, so the panel rasters keep their shape.
func ExportInstructionsPDF(path string, sheets []model.SheetResult) error {
	text := InstructionsText(sheets)
	if text == "" {
		return fmt.Errorf("no panels to document")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Assembly Instructions", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Courier", "", 6)
	pdf.MultiCell(0, 2.6, text, "", "L", false)

	return pdf.OutputFileAndClose(path)
}
