package export

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/piwi3910/mazecut/internal/model"
)

// File names of the per-run text documents.
const (
	KeyFilePattern   = "key%03d.txt"
	InstructionsFile = "instructions.txt"
)

// KeyText documents every panel of a sheet in key order.
func KeyText(sheet model.SheetResult) string {
	entries := make([]string, 0, len(sheet.Placements))
	for _, p := range sheet.Placements {
		entries = append(entries, fmt.Sprintf("[Ordinal piece #%d]\n[Key piece #%d]\n%s", p.Ordinal, p.KeyNumber, p.Doc))
	}
	return strings.Join(entries, "\n")
}

// InstructionsText documents every panel of a run in assembly order,
// naming the sheet each one is cut from.
func InstructionsText(sheets []model.SheetResult) string {
	type entry struct {
		sheet int
		p     model.Placement
	}
	var entries []entry
	for _, s := range sheets {
		for _, p := range s.Placements {
			entries = append(entries, entry{sheet: s.Index, p: p})
		}
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return cmp.Compare(a.p.Ordinal, b.p.Ordinal) })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("[DOCUMENT %03d]\n[Ordinal piece #%d]\n[Key piece #%d]\n%s", e.sheet, e.p.Ordinal, e.p.KeyNumber, e.p.Doc)
	}
	return strings.Join(out, "\n")
}

// WriteKeys writes one key file per sheet and the instructions file into
// dir, returning the paths written.
func WriteKeys(dir string, sheets []model.SheetResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, s := range sheets {
		path := filepath.Join(dir, fmt.Sprintf(KeyFilePattern, s.Index))
		if err := os.WriteFile(path, []byte(KeyText(s)), 0644); err != nil {
			return written, fmt.Errorf("failed to write key for sheet %d: %w", s.Index, err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, InstructionsFile)
	if err := os.WriteFile(path, []byte(InstructionsText(sheets)), 0644); err != nil {
		return written, fmt.Errorf("failed to write instructions: %w", err)
	}
	return append(written, path), nil
}
