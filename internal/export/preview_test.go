package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/mazecut/internal/engine"
	"github.com/piwi3910/mazecut/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("preview was not created: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("%s is not a PNG", path)
	}
}

func TestExportSheetPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page001.png")

	sheets := buildTestSheets()
	if err := ExportSheetPreview(path, sheets[0], model.DefaultSettings()); err != nil {
		t.Fatalf("ExportSheetPreview returned error: %v", err)
	}
	assertPNG(t, path)
}

func TestExportBlueprintPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blueprint.png")

	bp := engine.Blueprint{
		{A: [3]int{0, 0, 0}, B: [3]int{3, 0, 0}, Family: model.FamilyLayer},
		{A: [3]int{0, 0, 0}, B: [3]int{0, 0, 2}, Family: model.FamilyTetris},
		{A: [3]int{1, 0, 0}, B: [3]int{1, 1, 0}, Family: model.FamilyLayer, Kind: engine.LinePerforation},
		{A: [3]int{2, 0, 0}, B: [3]int{2, 1, 0}, Family: model.FamilyLayer, Kind: engine.LineSlot},
		{A: [3]int{3, 0, 0}, B: [3]int{3, 3, 0}, Family: model.FamilySide},
	}
	if err := ExportBlueprintPreview(path, bp, "Panels"); err != nil {
		t.Fatalf("ExportBlueprintPreview returned error: %v", err)
	}
	assertPNG(t, path)
}

func TestExportBlueprintPreview_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := ExportBlueprintPreview(path, nil, "Panels"); err == nil {
		t.Fatal("expected error for empty blueprint, got nil")
	}
}

func TestIsometric(t *testing.T) {
	o := isometric([3]int{0, 0, 0})
	if o.X != 0 || o.Y != 0 {
		t.Errorf("origin projected to %v", o)
	}
	up := isometric([3]int{0, 0, 1})
	if up.X != 0 || up.Y != 1 {
		t.Errorf("unit z projected to %v", up)
	}
	// x and y mirror each other across the vertical axis
	x, y := isometric([3]int{1, 0, 0}), isometric([3]int{0, 1, 0})
	if x.X != -y.X || x.Y != y.Y {
		t.Errorf("x %v and y %v are not mirrored", x, y)
	}
}
