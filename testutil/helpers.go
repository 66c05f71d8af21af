package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDBPath returns a database path inside a per-test temporary directory
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "hiitbeep.db")
}

// WriteTempFile writes data to a file in a per-test temporary directory
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
