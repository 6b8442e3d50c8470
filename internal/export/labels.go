package export

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/mazecut/internal/model"
)

// LabelInfo holds the data encoded into each panel label's QR code.
type LabelInfo struct {
	ID         string  `json:"id"`
	Run        string  `json:"run"`
	Ordinal    int     `json:"ordinal"`
	KeyNumber  int     `json:"key"`
	Family     string  `json:"family"`
	Index      int     `json:"index"`
	SheetIndex int     `json:"sheet"`
	X          float64 `json:"x_in"`
	Y          float64 `json:"y_in"`
	Sections   int     `json:"sections"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos lists one label per placed panel, in assembly order.
// Every label gets a fresh id; run ties the labels to one export.
func CollectLabelInfos(sheets []model.SheetResult, run uuid.UUID, settings model.Settings) []LabelInfo {
	var labels []LabelInfo
	for _, sheet := range sheets {
		for _, p := range sheet.Placements {
			labels = append(labels, LabelInfo{
				ID:         uuid.NewString(),
				Run:        run.String(),
				Ordinal:    p.Ordinal,
				KeyNumber:  p.KeyNumber,
				Family:     p.Ref.Family.String(),
				Index:      p.Ref.Index,
				SheetIndex: sheet.Index,
				X:          float64(p.Offset.X) * settings.CellWidth,
				Y:          float64(p.Offset.Y) * settings.CellWidth,
				Sections:   len(p.Labels),
			})
		}
	}
	slices.SortStableFunc(labels, func(a, b LabelInfo) int { return cmp.Compare(a.Ordinal, b.Ordinal) })
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per panel, laid out
// on a standard label sheet (Avery 5160, 3 columns x 10 rows on US Letter).
func ExportLabels(path string, sheets []model.SheetResult, run uuid.UUID, settings model.Settings) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to generate labels for")
	}
	labels := CollectLabelInfos(sheets, run, settings)
	if len(labels) == 0 {
		return fmt.Errorf("no panels placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for panel %d: %w", label.Ordinal, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Assembly number, large
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 6, fmt.Sprintf("#%d", info.Ordinal), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+7)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s panel %d, key %d", info.Family, info.Index, info.KeyNumber), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+11)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Sheet %03d @ (%.3f, %.3f) in", info.SheetIndex, info.X, info.Y), "", 1, "L", false, 0, "")

	if info.Sections > 1 {
		pdf.SetXY(textX, y+labelPadding+14.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("%d separate sections", info.Sections), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
