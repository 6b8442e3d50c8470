package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/piwi3910/mazecut/internal/model"
)

// BackupVersion is written into new backups. Version 1.0.0 bundles carry
// no history.
const BackupVersion = "2"

var readableBackups = []string{"1.0.0", BackupVersion}

// BackupData bundles everything under ~/.mazecut: the config, the custom
// laser profiles and a snapshot of the run history database.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt time.Time            `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Profiles  []model.LaserProfile `json:"profiles"`
	History   []byte               `json:"history,omitempty"` // sqlite file
}

// ExportAllData writes config, profiles and, when config.HistoryPath names
// an existing database, a consistent copy of it to exportPath.
func ExportAllData(exportPath string, config model.AppConfig, profiles []model.LaserProfile) error {
	if profiles == nil {
		profiles = []model.LaserProfile{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Config:    config,
		Profiles:  profiles,
	}

	if config.HistoryPath != "" {
		if _, err := os.Stat(config.HistoryPath); err == nil {
			snap, err := snapshotHistory(config.HistoryPath)
			if err != nil {
				return fmt.Errorf("failed to back up history: %w", err)
			}
			backup.History = snap
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}
	if err := writeFileAtomic(exportPath, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// snapshotHistory copies the database through sqlite rather than reading
// the file, so pages still in a journal are included.
func snapshotHistory(path string) ([]byte, error) {
	h, err := OpenHistory(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	dir, err := os.MkdirTemp("", "mazecut-backup-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	snap := filepath.Join(dir, "history.db")
	if err := h.Snapshot(snap); err != nil {
		return nil, err
	}
	return os.ReadFile(snap)
}

// ImportAllData reads and checks a backup. Nothing is written; see
// RestoreHistory for the history part.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if !slices.Contains(readableBackups, backup.Version) {
		return BackupData{}, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	backup.Config.ApplyDefaults()
	if err := ValidateAppConfig(backup.Config); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	for i, p := range backup.Profiles {
		if err := validateProfile(p); err != nil {
			return BackupData{}, fmt.Errorf("invalid backup file: profile %d: %w", i+1, err)
		}
	}
	return backup, nil
}

// RestoreHistory writes the bundled history database to path and returns
// the number of runs it holds. An existing database is never replaced.
func RestoreHistory(backup BackupData, path string) (int, error) {
	if len(backup.History) == 0 {
		return 0, nil
	}
	if _, err := os.Stat(path); err == nil {
		return 0, fmt.Errorf("history %s already exists", path)
	}
	if err := writeFileAtomic(path, backup.History); err != nil {
		return 0, fmt.Errorf("failed to restore history: %w", err)
	}

	h, err := OpenHistory(path)
	if err != nil {
		return 0, err
	}
	defer h.Close()
	runs, err := h.Runs()
	if err != nil {
		return 0, fmt.Errorf("restored history is unreadable: %w", err)
	}
	return len(runs), nil
}
