package config

import (
	"errors"
	"os"
	"path/filepath"
)

// EnsureSettings makes sure <dataDir>/config.yml exists, seeding it with
// defaults on first run so the operator has a file to edit. Returns the
// path to the settings file.
func EnsureSettings(dataDir string) (string, error) {
	path := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := SaveAtomic(path, Default()); err != nil {
		return "", err
	}
	return path, nil
}
