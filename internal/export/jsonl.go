package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/hiitbeep/internal"
)

// JSONLExporter writes one record per line: a header, then every routine,
// then every workout log. Each line has a "kind" field.
type JSONLExporter struct{}

type jsonlHeader struct {
	Kind       string `json:"kind"`
	Version    string `json:"version"`
	ExportDate string `json:"exportDate"`
}

type jsonlRoutine struct {
	Kind string `json:"kind"`
	internal.Routine
}

type jsonlLog struct {
	Kind string `json:"kind"`
	internal.WorkoutLog
}

// Export exports a snapshot to JSONL format
func (e *JSONLExporter) Export(snapshot *internal.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)

	header := jsonlHeader{Kind: "export", Version: snapshot.Version, ExportDate: snapshot.ExportDate}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}

	for _, r := range snapshot.Routines {
		if err := enc.Encode(jsonlRoutine{Kind: "routine", Routine: r}); err != nil {
			return fmt.Errorf("failed to encode routine %s: %w", r.ID, err)
		}
	}

	for _, l := range snapshot.WorkoutLogs {
		if err := enc.Encode(jsonlLog{Kind: "workout", WorkoutLog: l}); err != nil {
			return fmt.Errorf("failed to encode workout log %s: %w", l.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
