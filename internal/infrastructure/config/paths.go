package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "VOCNOTE_HOME"
	dirName    = "vocnote"
	dbFilename = "vocnote.db"
)

// DataDir returns the directory holding the config file and the default database.
// It is created with 0700 permissions when missing.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config dir: %w", err)
	}
	dir := filepath.Join(base, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the absolute path of the default sqlite database.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}
