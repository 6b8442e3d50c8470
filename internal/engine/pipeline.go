package engine

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/mazecut/internal/model"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

// Pipeline turns a maze into packed, labelled cut sheets.
type Pipeline struct {
	Settings model.Settings
	Log      logrus.FieldLogger
}

func NewPipeline(settings model.Settings, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{Settings: settings, Log: log}
}

// Result is the outcome of one pipeline run. Exactly one of Set and Err
// is set; Err is always a *model.SchematicError.
type Result struct {
	Set   *model.CutSchematicSet
	Err   *model.SchematicError
	Stats TraceStats
}

// OK reports whether the run produced sheets.
func (r Result) OK() bool { return r.Err == nil }

func (p *Pipeline) log() logrus.FieldLogger {
	if p.Log == nil {
		return discardLogger()
	}
	return p.Log
}

// Run executes every stage on w. Maze-dependent rejections are logged at
// Info when they are worth showing and at Debug otherwise.
func (p *Pipeline) Run(w model.Walls) Result {
	var res Result
	set, err := p.run(w, &res.Stats)
	if err == nil {
		res.Set = set
		return res
	}

	var se *model.SchematicError
	if !errors.As(err, &se) {
		se = model.NewInternalError("%v", err)
	}
	res.Err = se
	entry := p.log().WithField("reason", se.Reason)
	switch {
	case se.Kind == model.Internal:
		entry.Error("schematic pipeline failed")
	case se.Display:
		entry.Info("maze rejected")
	default:
		entry.Debug("maze rejected")
	}
	return res
}

func (p *Pipeline) run(w model.Walls, stats *TraceStats) (*model.CutSchematicSet, error) {
	size := w.Size()
	stage := func(name string, start time.Time) {
		p.log().WithFields(logrus.Fields{
			"stage":   name,
			"elapsed": time.Since(start),
		}).Debug("stage complete")
	}

	start := time.Now()
	pieces, err := BuildPieces(w)
	if err != nil {
		return nil, err
	}
	stage("pieces", start)

	start = time.Now()
	inter, err := AssignInterstices(size, pieces.Tetris)
	if err != nil {
		return nil, err
	}
	stage("interstices", start)

	start = time.Now()
	grids := Rasterize(size, pieces, inter)
	if err := Perforate(pieces, grids); err != nil {
		return nil, err
	}
	stage("rasterize", start)

	start = time.Now()
	checker := &Checker{Repair: p.Settings.RepairIslands, Log: p.Log}
	if err := checker.Check(w, pieces, grids); err != nil {
		return nil, err
	}
	stage("check", start)

	start = time.Now()
	tracer := &Tracer{Log: p.Log}
	schematics, st, err := tracer.TraceAll(grids, p.Settings.EliminateMidpoints)
	stats.Add(st)
	if err != nil {
		return nil, err
	}
	stage("trace", start)

	start = time.Now()
	sheets, err := NewPacker(p.Settings).Pack(pieces, grids, schematics)
	if err != nil {
		return nil, err
	}
	order, err := AssemblyOrder(size, pieces)
	if err != nil {
		return nil, err
	}
	if err := Annotate(sheets, order, grids); err != nil {
		return nil, err
	}
	stage("pack", start)

	p.log().WithFields(logrus.Fields{
		"panels": pieces.Total(),
		"sheets": len(sheets),
	}).Info("maze packed")

	return &model.CutSchematicSet{
		Pieces:     pieces,
		Grids:      grids,
		Schematics: schematics,
		Sheets:     sheets,
		Order:      order,
	}, nil
}
