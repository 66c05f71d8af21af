package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
)

var (
	inspectFormat string
	inspectKey    string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the raw stored data",
	Long: `Inspect the raw contents of the HIITBeep database.

This command shows:
  • The database path and schema version
  • Every stored key with its size and, for JSON arrays, the element count
  • The full value of one key with --key

Examples:
  hiitbeep inspect                              # Summary of stored keys
  hiitbeep inspect --key hiitbeep_routines      # Pretty-print one value
  hiitbeep inspect --format json                # Machine-readable summary`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if inspectKey != "" {
			return inspectValue(out, current.kv, inspectKey)
		}

		entries, err := collectEntries(current.kv)
		if err != nil {
			return err
		}

		switch inspectFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		case "text":
			version, err := current.kv.SchemaVersion()
			if err != nil {
				return err
			}
			displayEntries(out, current.dbPath, version, entries)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: text, json)", inspectFormat)
		}
	},
}

// kvEntry summarises one stored key
type kvEntry struct {
	Key      string `json:"key"`
	Bytes    int    `json:"bytes"`
	Elements *int   `json:"elements,omitempty"`
	Valid    bool   `json:"validJson"`
	Preview  string `json:"preview"`
}

func collectEntries(kv *internal.SQLiteStore) ([]kvEntry, error) {
	pairs, err := kv.Keys("")
	if err != nil {
		return nil, err
	}

	entries := make([]kvEntry, 0, len(pairs))
	for _, pair := range pairs {
		entry := kvEntry{
			Key:     pair.Key,
			Bytes:   len(pair.Value),
			Valid:   json.Valid([]byte(pair.Value)),
			Preview: preview(pair.Value, 60),
		}
		var elements []json.RawMessage
		if json.Unmarshal([]byte(pair.Value), &elements) == nil {
			n := len(elements)
			entry.Elements = &n
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func displayEntries(out io.Writer, dbPath string, version int, entries []kvEntry) {
	_, _ = fmt.Fprintf(out, "📋 Database: %s\n", dbPath)
	_, _ = fmt.Fprintf(out, "📐 Schema version: %d\n", version)
	_, _ = fmt.Fprintf(out, "📊 Found %d key(s)\n\n", len(entries))

	if len(entries) == 0 {
		return
	}

	t := newTable(out, "Key", "Bytes", "Elements", "Preview")
	for _, e := range entries {
		elements := "—"
		if e.Elements != nil {
			elements = countStyle.Render(fmt.Sprintf("%d", *e.Elements))
		}
		key := nameStyle.Render(e.Key)
		if !e.Valid && strings.HasPrefix(e.Key, "hiitbeep_") {
			key = failStyle.Render(e.Key)
		}
		t.row(key, fmt.Sprintf("%d", e.Bytes), elements, dateStyle.Render(e.Preview))
	}
	t.flush()
}

func inspectValue(out io.Writer, kv *internal.SQLiteStore, key string) error {
	value, ok, err := kv.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("key not found: %s", key)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, []byte(value), "", "  ") == nil {
		_, _ = fmt.Fprintln(out, pretty.String())
		return nil
	}
	_, _ = fmt.Fprintln(out, value)
	return nil
}

// preview returns the first line of s cut to max runes
func preview(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "..."
	}
	return truncate(s, max)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format (text, json)")
	inspectCmd.Flags().StringVar(&inspectKey, "key", "", "Print the full value stored under this key")
}
