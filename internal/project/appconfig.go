package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/mazecut/internal/model"
)

// DefaultConfigDir is ~/.mazecut, or ./.mazecut when there is no home.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".mazecut")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// ValidateAppConfig reports every setting that would make a run fail or
// produce unusable output. The problems are joined into one error.
func ValidateAppConfig(c model.AppConfig) error {
	s := c.Settings
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for i, n := range s.MazeSize {
		if n < 1 {
			bad("maze size %c must be at least 1 tile, got %d", "XYZ"[i], n)
		}
	}
	if s.Randomness < 0 || s.Randomness > 1 {
		bad("randomness must be within [0, 1], got %g", s.Randomness)
	}

	if s.Margin < 0 {
		bad("margin must not be negative, got %d", s.Margin)
	}
	// the packer does not rotate, so the widest layer and the tallest side
	// have to fit between the margins as they are
	usableW, usableH := s.SheetWidth-2*s.Margin, s.SheetHeight-2*s.Margin
	panelW := model.TileToCell(max(s.MazeSize[0], s.MazeSize[1])) + 1
	panelH := model.TileToCell(max(s.MazeSize[1], s.MazeSize[2])) + 1
	if usableW < panelW || usableH < panelH {
		bad("sheet %dx%d cells with margin %d cannot hold a %dx%d cell panel",
			s.SheetWidth, s.SheetHeight, s.Margin, panelW, panelH)
	}

	if s.CellWidth <= 0 {
		bad("cell width must be positive, got %g", s.CellWidth)
	}
	// a kerf as wide as a cell burns the tabs away
	if s.LineWidth <= 0 || s.LineWidth >= s.CellWidth {
		bad("line width %g must be positive and narrower than a cell", s.LineWidth)
	}
	if s.FontSize < 1 || s.FontSize > model.TileSize {
		bad("font size must be between 1 and %d cells, got %d", model.TileSize, s.FontSize)
	}

	if s.FeedRate <= 0 || s.TravelRate <= 0 {
		bad("feed and travel rates must be positive")
	}
	if s.LaserPower < 0 {
		bad("laser power must not be negative, got %d", s.LaserPower)
	}
	if s.Passes < 1 {
		bad("passes must be at least 1, got %d", s.Passes)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Count < 1 {
		bad("count must be at least 1, got %d", c.Count)
	}
	if c.Attempts < 0 {
		bad("attempts must not be negative, got %d", c.Attempts)
	}
	return errors.Join(errs...)
}

// SaveAppConfig validates config and replaces the file at path. The write
// goes through a temporary file so a failed save leaves the old config.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := ValidateAppConfig(config); err != nil {
		return fmt.Errorf("refusing to save config: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// LoadAppConfig reads the config at path. A missing file yields the
// defaults; keys left out of the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	config.ApplyDefaults()
	if err := ValidateAppConfig(config); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
