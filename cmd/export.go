package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/export"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

var (
	format     string
	outputPath string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export routines and workout history",
	Long: `Export all routines and the workout history.

The json format is the backup format accepted by 'hiitbeep import'. yaml and
jsonl carry the same data; md is a readable report. Without --out the
document is written to standard output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format, export.WithTranslator(current.loc.Translator().Get()))
		if err != nil {
			return err
		}

		snapshot := current.storage.Snapshot()

		if outputPath == "" || outputPath == "-" {
			if err := exporter.Export(snapshot, cmd.OutOrStdout()); err != nil {
				return &internal.ExportError{Format: format, Path: "-", Err: err}
			}
			return nil
		}

		path := outputPath
		if filepath.Ext(path) == "" {
			path = fmt.Sprintf("%s.%s", path, exporter.Extension())
		}

		if err := writeExport(exporter, snapshot, path); err != nil {
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		internal.LogInfo("Wrote %s export to %s", format, path)

		internal.PrintSuccess(current.loc.Tf("export.done", i18n.Params{
			"routines": len(snapshot.Routines),
			"logs":     len(snapshot.WorkoutLogs),
			"path":     path,
		}))
		return nil
	},
}

func writeExport(exporter export.Exporter, snapshot *internal.Snapshot, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return exporter.Export(snapshot, f)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import routines and workouts from a JSON backup",
	Long: `Merge a JSON backup made by 'hiitbeep export' into the saved data.

Routines whose name matches an existing routine (ignoring case) are skipped.
Imported workouts are added after the existing history. The import is
rejected as a whole when it would exceed 15 routines. Use - to read from
standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		summary, err := current.storage.ImportData(string(data))
		if err != nil {
			return err
		}
		current.store.Refresh()

		for _, name := range summary.Skipped {
			internal.PrintWarning(current.loc.Tf("import.skipped", i18n.Params{"name": name}))
		}
		internal.PrintSuccess(current.loc.Tf("import.done", i18n.Params{
			"routines": summary.Routines,
			"logs":     summary.Logs,
		}))
		return nil
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml, jsonl, md")
	exportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file (default: standard output)")
}
