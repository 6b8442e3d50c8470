package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/mazecut/internal/model"
)

func TestExportDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page001.dxf")

	sheets := buildTestSheets()
	if err := ExportDXF(path, sheets[0], model.DefaultSettings()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("DXF file is empty")
	}
}

func TestExportDXF_SharedEdgesCutOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page001.dxf")

	sheets := buildTestSheets()
	if err := ExportDXF(path, sheets[0], model.DefaultSettings()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	var polylines []*entity.LwPolyline
	for _, e := range drawing.Entities() {
		if v, ok := e.(*entity.LwPolyline); ok {
			polylines = append(polylines, v)
		}
	}

	// the left square closes on itself; the right one loses its shared edge
	// and stays open
	if len(polylines) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(polylines))
	}
	if len(polylines[0].Vertices) != 5 || len(polylines[1].Vertices) != 4 {
		t.Errorf("expected 5 and 4 vertices, got %d and %d", len(polylines[0].Vertices), len(polylines[1].Vertices))
	}

	// vertices are written in inches
	v := polylines[0].Vertices[1]
	if v[0] != 9*0.125 || v[1] != 2*0.125 {
		t.Errorf("expected second vertex at (1.125, 0.25), got (%v, %v)", v[0], v[1])
	}
}

func TestExportDXF_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blank.dxf")

	sheet := model.SheetResult{Index: 1, Width: 192, Height: 152}
	if err := ExportDXF(path, sheet, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	if _, err := dxf.Open(path); err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}
}
