package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/mazecut/internal/engine"
	"github.com/piwi3910/mazecut/internal/export"
	"github.com/piwi3910/mazecut/internal/gcode"
	"github.com/piwi3910/mazecut/internal/importer"
	"github.com/piwi3910/mazecut/internal/model"
)

// Output formats selectable in Settings.Formats. Key text, instructions and
// the key workbook are written for every maze.
const (
	FormatDXF       = "dxf"
	FormatPDF       = "pdf"
	FormatGCode     = "gcode"
	FormatPNG       = "png"
	FormatBlueprint = "blueprint"
	FormatLabels    = "labels"
)

var knownFormats = []string{FormatDXF, FormatPDF, FormatGCode, FormatPNG, FormatBlueprint, FormatLabels}

func checkFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(knownFormats, f) {
			return fmt.Errorf("unknown output format %q (known: %v)", f, knownFormats)
		}
	}
	return nil
}

// writer writes the files of one successful maze into its own directory.
type writer struct {
	settings model.Settings
	profile  model.LaserProfile
	run      uuid.UUID
	verify   bool
	log      logrus.FieldLogger
}

func (w *writer) has(format string) bool {
	return slices.Contains(w.settings.Formats, format)
}

// write stores every file of attempt a under dir and returns their paths.
func (w *writer) write(dir string, a engine.Attempt) ([]string, error) {
	set := a.Result.Set
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []string
	add := func(name string, fn func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := fn(path); err != nil {
			return err
		}
		files = append(files, path)
		return nil
	}

	gen := gcode.NewWithProfile(w.settings, w.profile)
	for _, sheet := range set.Sheets {
		base := fmt.Sprintf("page%03d", sheet.Index)
		steps := []struct {
			format string
			ext    string
			fn     func(path string) error
		}{
			{FormatDXF, ".dxf", func(p string) error { return export.ExportDXF(p, sheet, w.settings) }},
			{FormatPDF, ".pdf", func(p string) error { return export.ExportSheetPDF(p, sheet, w.settings) }},
			{FormatGCode, ".gcode", func(p string) error { return w.writeGCode(p, gen, sheet) }},
			{FormatPNG, ".png", func(p string) error { return export.ExportSheetPreview(p, sheet, w.settings) }},
		}
		for _, s := range steps {
			if !w.has(s.format) {
				continue
			}
			if err := add(base+s.ext, s.fn); err != nil {
				return files, err
			}
		}
	}

	if w.has(FormatPDF) && len(set.Sheets) > 1 {
		if err := add("sheets.pdf", func(p string) error { return export.ExportPDF(p, set.Sheets, w.settings) }); err != nil {
			return files, err
		}
	}
	if w.has(FormatBlueprint) {
		bp := engine.SchematicBlueprint(set.Pieces, set.Schematics)
		if err := add("blueprint.png", func(p string) error { return export.ExportBlueprintPreview(p, bp, a.SeedString) }); err != nil {
			return files, err
		}
	}
	if w.has(FormatLabels) {
		if err := add("labels.pdf", func(p string) error { return export.ExportLabels(p, set.Sheets, w.run, w.settings) }); err != nil {
			return files, err
		}
	}

	keys, err := export.WriteKeys(dir, set.Sheets)
	files = append(files, keys...)
	if err != nil {
		return files, err
	}
	if err := add(export.InstructionsFile, func(p string) error {
		return os.WriteFile(p, []byte(export.InstructionsText(set.Sheets)), 0644)
	}); err != nil {
		return files, fmt.Errorf("failed to write instructions: %w", err)
	}
	if err := add("instructions.pdf", func(p string) error { return export.ExportInstructionsPDF(p, set.Sheets) }); err != nil {
		return files, err
	}
	if err := add("key.xlsx", func(p string) error { return export.ExportKeyWorkbook(p, set.Sheets, w.settings) }); err != nil {
		return files, err
	}

	for _, msg := range gcode.FormatMarginWarnings(gcode.CheckMargins(set.Sheets, w.settings), w.settings) {
		w.log.Warn(msg)
	}
	if w.verify {
		if err := w.verifyOutputs(dir, set.Sheets); err != nil {
			return files, err
		}
	}
	return files, nil
}

func (w *writer) writeGCode(path string, gen *gcode.Generator, sheet model.SheetResult) error {
	code := gen.GenerateSheet(sheet)
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write G-code: %w", err)
	}
	stats := gcode.Summarize(gcode.ParseGCode(code), w.settings.TravelRate)
	w.log.WithFields(logrus.Fields{
		"sheet":  sheet.Index,
		"cuts":   stats.Cuts,
		"cut_in": fmt.Sprintf("%.1f", stats.CutLength),
		"travel": fmt.Sprintf("%.1f", stats.TravelLength),
		"time":   stats.Duration.Round(time.Second),
	}).Debug("G-code written")
	return nil
}

// verifyOutputs reads the written DXF sheets and key workbook back and
// compares them with the sheets they were generated from.
func (w *writer) verifyOutputs(dir string, sheets []model.SheetResult) error {
	var problems []string
	if w.has(FormatDXF) {
		for _, sheet := range sheets {
			r := importer.ImportSheetDXF(filepath.Join(dir, fmt.Sprintf("page%03d.dxf", sheet.Index)), w.settings.CellWidth)
			problems = append(problems, r.Errors...)
			for _, msg := range r.Warnings {
				w.log.Warn(msg)
			}
			if r.OK() {
				problems = append(problems, importer.VerifySheet(sheet, r.Paths)...)
			}
		}
	}
	r := importer.ImportKeyWorkbook(filepath.Join(dir, "key.xlsx"))
	problems = append(problems, r.Errors...)
	if r.OK() {
		problems = append(problems, importer.VerifyKey(r.Rows, sheets)...)
	}

	for _, p := range problems {
		w.log.Error(p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("verification of %s found %d problems", dir, len(problems))
	}
	w.log.WithField("dir", dir).Info("outputs verified")
	return nil
}
