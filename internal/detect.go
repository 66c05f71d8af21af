package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const databaseFileName = "hiitbeep.db"

// DataPaths holds the detected locations for hiitbeep data
type DataPaths struct {
	DataDir string
}

// DetectDataPaths detects where hiitbeep keeps its data on this OS
func DetectDataPaths() (DataPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return detectDataPaths(runtime.GOOS, home, os.Getenv("XDG_DATA_HOME"))
}

func detectDataPaths(goos, home, xdgDataHome string) (DataPaths, error) {
	switch goos {
	case "darwin":
		return DataPaths{DataDir: filepath.Join(home, "Library/Application Support/HIITBeep")}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if xdgDataHome != "" && filepath.IsAbs(xdgDataHome) {
			return DataPaths{DataDir: filepath.Join(xdgDataHome, "hiitbeep")}, nil
		}
		return DataPaths{DataDir: filepath.Join(home, ".local/share/hiitbeep")}, nil
	default:
		return DataPaths{}, fmt.Errorf("unsupported OS: %s (use --storage to choose a database path)", goos)
	}
}

// DatabasePath returns the path of the SQLite database file
func (p DataPaths) DatabasePath() string {
	return filepath.Join(p.DataDir, databaseFileName)
}
