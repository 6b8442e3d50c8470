// Package gcode turns packed cut sheets into laser G-code and reads it back
// for verification.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/mazecut/internal/model"
)

// Generator produces laser G-code from a packed sheet.
type Generator struct {
	Settings model.Settings
	profile  model.LaserProfile
}

func New(settings model.Settings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.LaserProfile),
	}
}

// NewWithProfile uses profile instead of looking settings.LaserProfile up
// among the built-in profiles.
func NewWithProfile(settings model.Settings, profile model.LaserProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// GenerateSheet produces G-code cutting every polyline of the sheet.
// Edges shared by neighbouring panels are cut once.
func (g *Generator) GenerateSheet(sheet model.SheetResult) string {
	var b strings.Builder

	g.writeHeader(&b, sheet)

	paths := orderPaths(sheet.Polylines(), model.Coordinate{})
	for i, path := range paths {
		g.writePath(&b, path, i+1, len(paths))
	}

	g.writeFooter(&b)
	return b.String()
}

// GenerateAll produces one G-code program per sheet.
func (g *Generator) GenerateAll(sheets []model.SheetResult) []string {
	var codes []string
	for _, sheet := range sheets {
		codes = append(codes, g.GenerateSheet(sheet))
	}
	return codes
}

func (g *Generator) passes() int {
	return max(g.Settings.Passes, 1)
}

func (g *Generator) writeHeader(b *strings.Builder, sheet model.SheetResult) {
	p := g.profile
	cw := g.Settings.CellWidth

	b.WriteString(g.comment(fmt.Sprintf("MazeCut G-code - Sheet %03d", sheet.Index)))
	b.WriteString(g.comment(fmt.Sprintf("Material: %.3f x %.3f in", float64(sheet.Width)*cw, float64(sheet.Height)*cw)))
	b.WriteString(g.comment(fmt.Sprintf("Panels: %d, Usage: %.1f%%", len(sheet.Placements), sheet.Efficiency())))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.1f in/min, Power: S%d, Passes: %d",
		g.Settings.FeedRate, g.Settings.LaserPower, g.passes())))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.LaserOff != "" {
		b.WriteString(p.LaserOff + "\n")
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

// writePath cuts one polyline. A closed polyline repeats its first point
// at the end.
func (g *Generator) writePath(b *strings.Builder, path model.CutPath, n, total int) {
	if len(path) < 2 {
		return
	}
	p := g.profile
	cw := g.Settings.CellWidth

	b.WriteString(g.comment(fmt.Sprintf("--- Path %d/%d: %d points ---", n, total, len(path))))
	for pass := 1; pass <= g.passes(); pass++ {
		if g.passes() > 1 {
			b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d", pass, g.passes())))
		}
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.RapidMove,
			g.format(float64(path[0].X)*cw), g.format(float64(path[0].Y)*cw), g.format(g.Settings.TravelRate)))
		if p.LaserOn != "" {
			b.WriteString(fmt.Sprintf(p.LaserOn+"\n", g.Settings.LaserPower))
		}
		for _, c := range path[1:] {
			b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove,
				g.format(float64(c.X)*cw), g.format(float64(c.Y)*cw), g.format(g.Settings.FeedRate)))
		}
		if p.LaserOff != "" {
			b.WriteString(p.LaserOff + "\n")
		}
	}
	b.WriteString("\n")
}

// orderPaths sorts polylines by nearest start, beginning at from. Open
// polylines may be cut in reverse when their far end is closer.
func orderPaths(paths []model.CutPath, from model.Coordinate) []model.CutPath {
	remaining := make([]model.CutPath, len(paths))
	copy(remaining, paths)

	out := make([]model.CutPath, 0, len(paths))
	for len(remaining) > 0 {
		best, bestDist, reverse := 0, -1, false
		for i, path := range remaining {
			if d := manhattan(from, path[0]); bestDist < 0 || d < bestDist {
				best, bestDist, reverse = i, d, false
			}
			if path[0] == path[len(path)-1] {
				continue
			}
			if d := manhattan(from, path[len(path)-1]); d < bestDist {
				best, bestDist, reverse = i, d, true
			}
		}

		path := remaining[best]
		if reverse {
			r := make(model.CutPath, len(path))
			for i, c := range path {
				r[len(path)-1-i] = c
			}
			path = r
		}
		out = append(out, path)
		from = path[len(path)-1]
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return out
}

func manhattan(a, b model.Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}
