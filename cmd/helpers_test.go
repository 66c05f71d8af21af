package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/testutil"
)

// cliResult is the outcome of one CLI invocation
type cliResult struct {
	Out string
	Err error
	// Msg is Err rendered the way Execute prints it
	Msg string
}

// runCLI executes the root command against dbPath with English output
func runCLI(t *testing.T, dbPath string, args ...string) cliResult {
	t.Helper()
	t.Setenv("LANG", "en_US.UTF-8")
	t.Setenv("HIITBEEP_DB", "")
	t.Setenv("HIITBEEP_VERBOSE", "")

	resetFlags(rootCmd)

	var out bytes.Buffer
	prevOut, prevErr := internal.Stdout, internal.Stderr
	internal.Stdout, internal.Stderr = &out, &out
	defer func() { internal.Stdout, internal.Stderr = prevOut, prevErr }()

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--storage", dbPath}, args...))

	err := rootCmd.Execute()
	res := cliResult{Out: out.String(), Err: err}
	if err != nil {
		res.Msg = localize(err)
	}
	closeApp()
	return res
}

// resetFlags restores every flag to its default between invocations
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// openStorage opens dbPath directly for seeding and assertions
func openStorage(t *testing.T, dbPath string) *internal.RoutineStorage {
	t.Helper()
	kv, err := internal.OpenSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return internal.NewRoutineStorage(kv)
}

func seededDB(t *testing.T) string {
	t.Helper()
	path := testutil.TempDBPath(t)
	kv, err := internal.OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(internal.StorageKeyRoutines, testutil.SampleRoutinesJSON))
	require.NoError(t, kv.Set(internal.StorageKeyLogs, testutil.SampleLogsJSON))
	require.NoError(t, kv.Close())
	return path
}
