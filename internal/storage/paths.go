// Package storage keeps saved games, preferences and results in a BadgerDB
// database under the user's data directory.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "chessplay"

	// envDatabaseDir points the archive somewhere else when set.
	envDatabaseDir = "CHESSPLAY_DB"
)

// GetDataDir returns chessplay's directory under the per-user application
// data root, creating it if needed: Application Support on macOS, APPDATA
// on Windows and XDG_DATA_HOME (or ~/.local/share) elsewhere.
func GetDataDir() (string, error) {
	root, err := userDataRoot()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(root, appName))
}

// GetDatabaseDir returns where the archive lives: $CHESSPLAY_DB if set,
// otherwise the db subdirectory of GetDataDir.
func GetDatabaseDir() (string, error) {
	if dir := os.Getenv(envDatabaseDir); dir != "" {
		return ensureDir(dir)
	}

	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

func userDataRoot() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support")
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return underHome("AppData", "Roaming")
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		return underHome(".local", "share")
	}
}

func underHome(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
