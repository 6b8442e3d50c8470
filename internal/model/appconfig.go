package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default run settings applied when no flag overrides them
	Settings Settings `json:"settings"`

	// Application preferences
	OutputDir   string `json:"output_dir"`   // where sheet files are written
	HistoryPath string `json:"history_path"` // sqlite database of past runs, "" = disabled
	LogLevel    string `json:"log_level"`    // logrus level name
	Attempts    int    `json:"attempts"`     // maze attempts per batch, 0 = unlimited
	Count       int    `json:"count"`        // successful mazes wanted per batch
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Settings:    DefaultSettings(),
		OutputDir:   "mazecut-out",
		HistoryPath: "",
		LogLevel:    "info",
		Attempts:    100,
		Count:       1,
	}
}

// ApplyDefaults fills zero-valued fields left out of a partial config file.
func (c *AppConfig) ApplyDefaults() {
	d := DefaultAppConfig()
	if c.Settings.MazeSize == ([3]int{}) {
		c.Settings = d.Settings
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Count <= 0 {
		c.Count = d.Count
	}
	if c.Settings.Formats == nil {
		c.Settings.Formats = d.Settings.Formats
	}
}
