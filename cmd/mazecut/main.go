// MazeCut turns randomly generated 3-D mazes into laser-cut panel sheets.
//
// Each successful maze gets its own output directory holding the cut
// sheets (DXF, PDF, G-code, PNG), the assembly key and instructions, and
// optionally a blueprint preview and printable panel labels.
//
// Build:
//
//	go build -o mazecut ./cmd/mazecut
//
// Examples:
//
//	mazecut -size 4,4,3 -count 3 -out sheets
//	mazecut -maze 000000000000002a3f00000003 -formats dxf,gcode -verify
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/mazecut/internal/engine"
	"github.com/piwi3910/mazecut/internal/maze"
	"github.com/piwi3910/mazecut/internal/model"
	"github.com/piwi3910/mazecut/internal/project"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "mazecut: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	profilesPath string
	maze         string
	start        uint64
	verify       bool
	saveConfig   bool
	backup       string
	restore      string
}

// parseSize parses "X,Y,Z" tile counts.
func parseSize(s string) ([3]int, error) {
	var size [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return size, fmt.Errorf("size must be X,Y,Z, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return size, fmt.Errorf("invalid size %q: %w", p, err)
		}
		size[i] = v
	}
	return size, nil
}

func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseFlags loads the configuration file and applies the flags given on
// the command line on top of it.
func parseFlags(args []string, stderr io.Writer) (model.AppConfig, options, error) {
	fs := flag.NewFlagSet("mazecut", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	d := model.DefaultAppConfig()
	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "configuration file")
	fs.StringVar(&opts.profilesPath, "profiles", project.DefaultProfilesPath(), "custom laser profiles file")
	fs.StringVar(&opts.maze, "maze", "", "rebuild the maze with this seed string")
	fs.Uint64Var(&opts.start, "start", 0, "seed of the first attempt (default: current time)")
	fs.BoolVar(&opts.verify, "verify", false, "read written DXF sheets and key workbook back and check them")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "write the effective configuration back to -config")
	fs.StringVar(&opts.backup, "backup", "", "write configuration and custom profiles to this file and exit")
	fs.StringVar(&opts.restore, "restore", "", "restore configuration and custom profiles from this file and exit")

	size := fs.String("size", "", "maze size in tiles as X,Y,Z")
	randomness := fs.Float64("randomness", d.Settings.Randomness, "chance of growing from the newest cell")
	count := fs.Int("count", d.Count, "successful mazes wanted")
	attempts := fs.Int("attempts", d.Attempts, "maze attempts before giving up, 0 = unlimited")
	out := fs.String("out", d.OutputDir, "output directory")
	formats := fs.String("formats", strings.Join(d.Settings.Formats, ","), "comma-separated output formats")
	profile := fs.String("profile", d.Settings.LaserProfile, "laser G-code profile")
	history := fs.String("history", "", "sqlite history database")
	logLevel := fs.String("log-level", d.LogLevel, "log level")
	noRepair := fs.Bool("no-repair", false, "reject mazes with islanded cells instead of repairing them")

	if err := fs.Parse(args); err != nil {
		return model.AppConfig{}, opts, err
	}
	if fs.NArg() > 0 {
		return model.AppConfig{}, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return model.AppConfig{}, opts, err
	}

	var ferr error
	startSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			startSet = true
		case "size":
			s, err := parseSize(*size)
			if err != nil {
				ferr = err
				return
			}
			cfg.Settings.MazeSize = s
		case "randomness":
			cfg.Settings.Randomness = *randomness
		case "count":
			cfg.Count = *count
		case "attempts":
			cfg.Attempts = *attempts
		case "out":
			cfg.OutputDir = *out
		case "formats":
			cfg.Settings.Formats = parseFormats(*formats)
		case "profile":
			cfg.Settings.LaserProfile = *profile
		case "history":
			cfg.HistoryPath = *history
		case "log-level":
			cfg.LogLevel = *logLevel
		case "no-repair":
			cfg.Settings.RepairIslands = !*noRepair
		}
	})
	if ferr != nil {
		return model.AppConfig{}, opts, ferr
	}

	if opts.maze != "" {
		seed, r, s, err := maze.ParseSeed(opts.maze)
		if err != nil {
			return model.AppConfig{}, opts, fmt.Errorf("invalid -maze: %w", err)
		}
		opts.start = seed
		cfg.Settings.Randomness = float64(r)
		cfg.Settings.MazeSize = s
		cfg.Count, cfg.Attempts = 1, 1
	} else if !startSet {
		opts.start = uint64(time.Now().UnixNano())
	}

	if err := checkFormats(cfg.Settings.Formats); err != nil {
		return model.AppConfig{}, opts, err
	}
	if err := project.ValidateAppConfig(cfg); err != nil {
		return model.AppConfig{}, opts, err
	}
	return cfg, opts, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log, err := project.NewLoggerTo(stderr, "mazecut", cfg.LogLevel)
	if err != nil {
		return err
	}

	if opts.restore != "" {
		return restore(log, opts)
	}

	custom, err := project.LoadCustomProfiles(opts.profilesPath)
	if err != nil {
		return err
	}
	if opts.backup != "" {
		if err := project.ExportAllData(opts.backup, cfg, custom); err != nil {
			return err
		}
		log.WithField("path", opts.backup).Info("backup written")
		return nil
	}
	if opts.saveConfig {
		if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
			return err
		}
		log.WithField("path", opts.configPath).Info("configuration saved")
	}

	w := &writer{
		settings: cfg.Settings,
		profile:  model.FindProfile(cfg.Settings.LaserProfile, custom),
		run:      uuid.New(),
		verify:   opts.verify,
		log:      log,
	}

	search := engine.SearchOptions{
		Count:    cfg.Count,
		Attempts: cfg.Attempts,
		Seed:     opts.start,
		Log:      log,
	}

	var history *project.History
	if cfg.HistoryPath != "" {
		history, err = project.OpenHistory(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer history.Close()
		if w.run, err = history.StartRun(cfg.Settings); err != nil {
			return err
		}
		search.Recorder = history
	}

	log.WithFields(logrus.Fields{
		"size":     cfg.Settings.MazeSize,
		"count":    cfg.Count,
		"attempts": cfg.Attempts,
		"start":    opts.start,
		"profile":  w.profile.Name,
	}).Info("searching for mazes")

	sum, searchErr := engine.Search(ctx, maze.New(cfg.Settings), cfg.Settings, search)
	if history != nil {
		if err := history.FinishRun(sum); err != nil {
			log.WithError(err).Error("failed to record run totals")
		}
	}
	if searchErr != nil && !errors.Is(searchErr, context.Canceled) {
		return searchErr
	}
	if searchErr != nil {
		log.Warn("search interrupted, writing mazes found so far")
	}

	for _, a := range sum.Successes {
		dir := filepath.Join(cfg.OutputDir, a.SeedString)
		files, err := w.write(dir, a)
		if err != nil {
			return fmt.Errorf("maze %s: %w", a.SeedString, err)
		}
		log.WithFields(logrus.Fields{
			"seed":   a.SeedString,
			"sheets": len(a.Result.Set.Sheets),
			"panels": a.Result.Set.Pieces.Total(),
			"files":  len(files),
		}).Info("maze written")
	}

	log.WithFields(logrus.Fields{
		"accepted":  len(sum.Successes),
		"attempts":  sum.Attempts,
		"rejected":  sum.Rejected,
		"traced":    sum.Stats.Traced,
		"abandoned": sum.Stats.Abandoned,
	}).Info("search finished")

	if len(sum.Successes) < cfg.Count {
		return fmt.Errorf("found %d of %d mazes in %d attempts", len(sum.Successes), cfg.Count, sum.Attempts)
	}
	return nil
}

func restore(log logrus.FieldLogger, opts options) error {
	data, err := project.ImportAllData(opts.restore)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(opts.configPath, data.Config); err != nil {
		return err
	}
	if err := project.SaveCustomProfiles(opts.profilesPath, data.Profiles); err != nil {
		return err
	}
	runs := 0
	if data.Config.HistoryPath != "" {
		if runs, err = project.RestoreHistory(data, data.Config.HistoryPath); err != nil {
			return err
		}
	}
	log.WithFields(logrus.Fields{
		"config":   opts.configPath,
		"profiles": len(data.Profiles),
		"runs":     runs,
		"created":  data.CreatedAt.Format(time.RFC3339),
	}).Info("backup restored")
	return nil
}
