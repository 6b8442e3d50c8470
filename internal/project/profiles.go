package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/mazecut/internal/model"
)

// DefaultProfilesPath returns the default file path for custom laser profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.LaserProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.LaserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.LaserProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.LaserProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for i, p := range profiles {
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i+1, err)
		}
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.LaserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.LaserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LaserProfile{}, err
	}

	var profile model.LaserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.LaserProfile{}, err
	}
	if err := validateProfile(profile); err != nil {
		return model.LaserProfile{}, err
	}
	return profile, nil
}

func validateProfile(p model.LaserProfile) error {
	switch {
	case p.Name == "":
		return errors.New("profile has no name")
	case p.FeedMove == "" || p.RapidMove == "":
		return fmt.Errorf("profile %q has no move commands", p.Name)
	case p.DecimalPlaces < 0:
		return fmt.Errorf("profile %q has negative decimal places", p.Name)
	}
	return nil
}
