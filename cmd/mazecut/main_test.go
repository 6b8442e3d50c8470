package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/mazecut/internal/engine"
	"github.com/piwi3910/mazecut/internal/maze"
	"github.com/piwi3910/mazecut/internal/model"
	"github.com/piwi3910/mazecut/internal/project"
)

func TestParseSize(t *testing.T) {
	size, err := parseSize("4, 3,2")
	require.NoError(t, err)
	assert.Equal(t, [3]int{4, 3, 2}, size)

	_, err = parseSize("4,3")
	assert.Error(t, err)
	_, err = parseSize("4,x,2")
	assert.Error(t, err)
}

func TestParseFormats(t *testing.T) {
	assert.Equal(t, []string{"dxf", "gcode"}, parseFormats(" DXF,,gcode "))
	assert.Nil(t, parseFormats(""))
}

func TestParseFlags_OverridesConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	cfg := model.DefaultAppConfig()
	cfg.Count = 5
	cfg.OutputDir = "from-config"
	require.NoError(t, project.SaveAppConfig(configPath, cfg))

	got, opts, err := parseFlags([]string{
		"-config", configPath, "-count", "2", "-size", "4,4,3", "-profile", "Grbl", "-start", "9", "-no-repair",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "from-config", got.OutputDir)
	assert.Equal(t, [3]int{4, 4, 3}, got.Settings.MazeSize)
	assert.Equal(t, "Grbl", got.Settings.LaserProfile)
	assert.False(t, got.Settings.RepairIslands)
	assert.Equal(t, uint64(9), opts.start)
}

func TestParseFlags_MazeSeed(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MazeSize = [3]int{4, 3, 2}
	settings.Randomness = 0.25
	g, err := maze.New(settings).Generate(7)
	require.NoError(t, err)

	cfg, opts, err := parseFlags([]string{
		"-config", filepath.Join(t.TempDir(), "none.json"), "-maze", g.SeedString(), "-count", "4",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), opts.start)
	assert.Equal(t, [3]int{4, 3, 2}, cfg.Settings.MazeSize)
	assert.Equal(t, 0.25, cfg.Settings.Randomness)
	assert.Equal(t, 1, cfg.Count)
	assert.Equal(t, 1, cfg.Attempts)
}

func TestParseFlags_Errors(t *testing.T) {
	config := filepath.Join(t.TempDir(), "none.json")
	for _, args := range [][]string{
		{"-config", config, "-formats", "dxf,svg"},
		{"-config", config, "-maze", "nothex"},
		{"-config", config, "-size", "3,3"},
		{"-config", config, "extra"},
		{"-config", config, "-size", "30,3,3"},
		{"-config", config, "-randomness", "1.5"},
		{"-config", config, "-log-level", "loud"},
	} {
		_, _, err := parseFlags(args, &bytes.Buffer{})
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func corridorMaze() *maze.Grid {
	g := maze.NewGrid([3]int{3, 3, 3}, true)
	g.Carve([3]int{0, 1, 1}, model.PosX)
	g.Carve([3]int{1, 1, 1}, model.PosX)
	return g
}

func TestWriter_WritesEveryFormat(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Formats = knownFormats
	res := engine.NewPipeline(settings, nil).Run(corridorMaze())
	require.True(t, res.OK(), "%v", res.Err)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	w := &writer{
		settings: settings,
		profile:  model.GetProfile(settings.LaserProfile),
		run:      uuid.New(),
		verify:   true,
		log:      log,
	}

	dir := filepath.Join(t.TempDir(), "maze")
	files, err := w.write(dir, engine.Attempt{Number: 1, SeedString: "corridor", Result: res})
	require.NoError(t, err)

	for _, name := range []string{
		"page001.dxf", "page001.pdf", "page001.gcode", "page001.png",
		"blueprint.png", "labels.pdf", "key001.txt",
		"instructions.txt", "instructions.pdf", "key.xlsx",
	} {
		path := filepath.Join(dir, name)
		assert.Contains(t, files, path)
		info, err := os.Stat(path)
		if assert.NoError(t, err, name) {
			assert.Positive(t, info.Size(), name)
		}
	}
	assert.NotContains(t, files, filepath.Join(dir, "sheets.pdf"), "single sheet needs no combined PDF")

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, e.Message)
	}
	assert.Equal(t, "outputs verified", hook.LastEntry().Message)
}

func TestWriter_SelectedFormatsOnly(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Formats = []string{FormatGCode}
	res := engine.NewPipeline(settings, nil).Run(corridorMaze())
	require.True(t, res.OK(), "%v", res.Err)

	log, _ := test.NewNullLogger()
	w := &writer{settings: settings, profile: model.GetProfile("Grbl"), log: log}
	dir := t.TempDir()
	_, err := w.write(dir, engine.Attempt{Result: res})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "page001.dxf"))
	assert.True(t, os.IsNotExist(err))

	code, err := os.ReadFile(filepath.Join(dir, "page001.gcode"))
	require.NoError(t, err)
	assert.Contains(t, string(code), "; Profile: Grbl")
}

func TestRun_BackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	profilesPath := filepath.Join(dir, "profiles.json")
	backupPath := filepath.Join(dir, "backup.json")

	shop := model.GetProfile("Grbl")
	shop.Name = "Shop"
	require.NoError(t, project.SaveCustomProfiles(profilesPath, []model.LaserProfile{shop}))

	var stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-config", configPath, "-profiles", profilesPath, "-count", "3", "-backup", backupPath,
	}, &stderr)
	require.NoError(t, err, stderr.String())

	restored := t.TempDir()
	err = run(context.Background(), []string{
		"-config", filepath.Join(restored, "config.json"),
		"-profiles", filepath.Join(restored, "profiles.json"),
		"-restore", backupPath,
	}, &stderr)
	require.NoError(t, err, stderr.String())

	cfg, err := project.LoadAppConfig(filepath.Join(restored, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Count)

	profiles, err := project.LoadCustomProfiles(filepath.Join(restored, "profiles.json"))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Shop", profiles[0].Name)
}

func TestRun_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.db")

	var stderr bytes.Buffer
	// one attempt may or may not pack; either way the run is recorded
	_ = run(context.Background(), []string{
		"-config", filepath.Join(dir, "config.json"),
		"-profiles", filepath.Join(dir, "profiles.json"),
		"-history", historyPath,
		"-out", filepath.Join(dir, "out"),
		"-formats", "dxf",
		"-start", "1", "-attempts", "1",
	}, &stderr)

	h, err := project.OpenHistory(historyPath)
	require.NoError(t, err)
	defer h.Close()
	runs, err := h.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Attempts)
	assert.False(t, runs[0].FinishedAt.IsZero())
}
