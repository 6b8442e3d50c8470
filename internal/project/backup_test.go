package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/mazecut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Settings.FeedRate = 35
	cfg.OutputDir = "jobs"

	if err := ExportAllData(path, cfg, []model.LaserProfile{testProfile("K40")}); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if len(backup.History) != 0 {
		t.Error("expected no history without a history path")
	}
	if backup.Config.Settings.FeedRate != 35 {
		t.Errorf("expected FeedRate=35, got %f", backup.Config.Settings.FeedRate)
	}
	if backup.Config.OutputDir != "jobs" {
		t.Errorf("expected OutputDir=jobs, got %s", backup.Config.OutputDir)
	}
	if len(backup.Profiles) != 1 || backup.Profiles[0].Name != "K40" {
		t.Errorf("unexpected profiles %+v", backup.Profiles)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"output_dir":"x"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataPartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"output_dir":"old"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.Settings.MazeSize == ([3]int{}) {
		t.Error("settings should be filled with defaults after import")
	}
	if backup.Config.OutputDir != "old" {
		t.Errorf("expected OutputDir=old, got %s", backup.Config.OutputDir)
	}
}

func TestImportAllDataUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version":"9.9","config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for unknown version")
	}
}

func TestImportAllDataInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	cfg := model.DefaultAppConfig()
	cfg.Settings.Passes = 0
	backup := BackupData{Version: BackupVersion, Config: cfg}
	data, err := json.Marshal(backup)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for zero passes")
	}
}

func TestBackupCarriesHistory(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.db")
	h, err := OpenHistory(historyPath)
	if err != nil {
		t.Fatal(err)
	}
	run, err := h.StartRun(model.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.RecordAttempt(accepted(1)); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultAppConfig()
	cfg.HistoryPath = historyPath
	path := filepath.Join(dir, "backup.json")
	if err := ExportAllData(path, cfg, nil); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if len(backup.History) == 0 {
		t.Fatal("expected history in backup")
	}

	restored := filepath.Join(t.TempDir(), "restored", "history.db")
	runs, err := RestoreHistory(backup, restored)
	if err != nil {
		t.Fatalf("RestoreHistory failed: %v", err)
	}
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}

	h, err = OpenHistory(restored)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	attempts, err := h.Attempts(run)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 1 || attempts[0].Seed != "accepted-seed" {
		t.Errorf("unexpected restored attempts %+v", attempts)
	}

	if _, err := RestoreHistory(backup, restored); err == nil {
		t.Error("expected error restoring over an existing history")
	}
}

func TestExportAllDataMissingHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultAppConfig()
	cfg.HistoryPath = filepath.Join(dir, "never-created.db")
	path := filepath.Join(dir, "backup.json")
	if err := ExportAllData(path, cfg, nil); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	if _, err := os.Stat(cfg.HistoryPath); !os.IsNotExist(err) {
		t.Error("backup should not create the history database")
	}
}
