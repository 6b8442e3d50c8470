package gcode

import (
	"math"
	"strings"
	"testing"

	"github.com/piwi3910/mazecut/internal/model"
)

// newTestSettings returns settings suitable for testing with predictable output.
func newTestSettings() model.Settings {
	s := model.DefaultSettings()
	s.LaserProfile = "Generic"
	s.FeedRate = 20
	s.TravelRate = 200
	s.LaserPower = 1000
	s.Passes = 1
	return s
}

func square(x0, y0, size int) model.CutPath {
	return model.CutPath{{X: x0, Y: y0}, {X: x0 + size, Y: y0}, {X: x0 + size, Y: y0 + size}, {X: x0, Y: y0 + size}}
}

func newTestSheet() model.SheetResult {
	return model.SheetResult{
		Index: 1, Width: 40, Height: 40,
		Placements: []model.Placement{{
			Ref:     model.PanelRef{Family: model.FamilyLayer},
			Offset:  model.Coordinate{X: 2, Y: 2},
			Width:   8,
			Height:  8,
			Paths:   []model.CutPath{square(2, 2, 7)},
			Ordinal: 1,
		}},
	}
}

func countCuts(moves []GCodeMove) int {
	n := 0
	for _, m := range moves {
		if m.Type == MoveCut {
			n++
		}
	}
	return n
}

func TestGenerateSheet_Header(t *testing.T) {
	code := New(newTestSettings()).GenerateSheet(newTestSheet())

	for _, want := range []string{
		"; MazeCut G-code - Sheet 001\n",
		"; Material: 5.000 x 5.000 in\n",
		"; Profile: Generic\n",
		"G90\nG20\n",
		"; === Job complete ===\nM5\nG0 X0 Y0\nM2\n",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestGenerateSheet_CutsSquare(t *testing.T) {
	code := New(newTestSettings()).GenerateSheet(newTestSheet())

	want := "G0 X0.250 Y0.250 F200.000\n" +
		"M3 S1000\n" +
		"G1 X1.125 Y0.250 F20.000\n" +
		"G1 X1.125 Y1.125 F20.000\n" +
		"G1 X0.250 Y1.125 F20.000\n" +
		"G1 X0.250 Y0.250 F20.000\n" +
		"M5\n"
	if !strings.Contains(code, want) {
		t.Errorf("expected square cut:\n%s\ngot:\n%s", want, code)
	}
}

func TestGenerateSheet_ParsesBack(t *testing.T) {
	code := New(newTestSettings()).GenerateSheet(newTestSheet())
	moves := ParseGCode(code)

	if n := countCuts(moves); n != 4 {
		t.Fatalf("expected 4 cutting moves, got %d", n)
	}
	stats := Summarize(moves, 200)
	if math.Abs(stats.CutLength-3.5) > 1e-9 {
		t.Errorf("expected 3.5 in of cuts, got %v", stats.CutLength)
	}
	if stats.Duration <= 0 {
		t.Errorf("expected a positive duration, got %v", stats.Duration)
	}
	// the last move returns home with the laser off
	last := moves[len(moves)-1]
	if last.Type != MoveRapid || last.ToX != 0 || last.ToY != 0 {
		t.Errorf("expected rapid home, got %+v", last)
	}
}

func TestGenerateSheet_MultiplePasses(t *testing.T) {
	settings := newTestSettings()
	settings.Passes = 3
	code := New(settings).GenerateSheet(newTestSheet())

	if n := countCuts(ParseGCode(code)); n != 12 {
		t.Errorf("expected 12 cutting moves, got %d", n)
	}
	if !strings.Contains(code, "; Pass 3/3\n") {
		t.Error("expected pass comments")
	}
}

func TestGenerateSheet_SharedEdgeCutOnce(t *testing.T) {
	sheet := newTestSheet()
	sheet.Placements = append(sheet.Placements, model.Placement{
		Ref:     model.PanelRef{Family: model.FamilyTetris},
		Paths:   []model.CutPath{square(9, 2, 7)},
		Ordinal: 2,
	})

	moves := ParseGCode(New(newTestSettings()).GenerateSheet(sheet))
	if n := countCuts(moves); n != 7 {
		t.Errorf("expected 7 cutting moves, got %d", n)
	}
	if l := Summarize(moves, 200).CutLength; math.Abs(l-7*7*0.125) > 1e-9 {
		t.Errorf("expected %v in of cuts, got %v", 7*7*0.125, l)
	}
}

func TestGenerateSheet_LinuxCNCComments(t *testing.T) {
	settings := newTestSettings()
	settings.LaserProfile = "LinuxCNC"
	code := New(settings).GenerateSheet(newTestSheet())

	if !strings.Contains(code, "( MazeCut G-code - Sheet 001)\n") {
		t.Error("expected parenthetical comments")
	}
	if !strings.Contains(code, "G1 X1.1250 Y0.2500 F20.0000\n") {
		t.Error("expected 4 decimal places")
	}
	if n := countCuts(ParseGCode(code)); n != 4 {
		t.Errorf("expected 4 cutting moves, got %d", n)
	}
}

func TestGenerateSheet_GrblDynamicPower(t *testing.T) {
	settings := newTestSettings()
	settings.LaserProfile = "Grbl"
	code := New(settings).GenerateSheet(newTestSheet())

	if !strings.Contains(code, "M4 S1000\n") {
		t.Error("expected M4 laser on")
	}
	if n := countCuts(ParseGCode(code)); n != 4 {
		t.Errorf("expected 4 cutting moves, got %d", n)
	}
}

func TestGenerateAll(t *testing.T) {
	second := newTestSheet()
	second.Index = 2
	codes := New(newTestSettings()).GenerateAll([]model.SheetResult{newTestSheet(), second})
	if len(codes) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(codes))
	}
	if !strings.Contains(codes[1], "Sheet 002") {
		t.Error("expected second program to name sheet 002")
	}
}

func TestOrderPaths_NearestFirst(t *testing.T) {
	far := model.CutPath{{X: 30, Y: 30}, {X: 35, Y: 30}}
	near := model.CutPath{{X: 10, Y: 1}, {X: 1, Y: 1}}
	closed := model.CutPath{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 5}}

	out := orderPaths([]model.CutPath{far, closed, near}, model.Coordinate{})
	if len(out) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(out))
	}
	// near is reversed: its end at (1, 1) is closest to the origin
	if out[0][0] != (model.Coordinate{X: 1, Y: 1}) {
		t.Errorf("expected reversed near path first, got %v", out[0])
	}
	if out[1][0] != (model.Coordinate{X: 5, Y: 5}) {
		t.Errorf("expected closed path second, got %v", out[1])
	}
	if out[2][0] != (model.Coordinate{X: 30, Y: 30}) {
		t.Errorf("expected far path last, got %v", out[2])
	}
}

func TestGenerateSheet_EmptySheet(t *testing.T) {
	code := New(newTestSettings()).GenerateSheet(model.SheetResult{Index: 1, Width: 10, Height: 10})
	if n := countCuts(ParseGCode(code)); n != 0 {
		t.Errorf("expected no cuts, got %d", n)
	}
}
