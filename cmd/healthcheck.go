package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

var (
	healthcheckVerbose bool
)

// errUnhealthy is returned when the health check finds problems
var errUnhealthy = errors.New("health check failed")

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the database can be opened and its data read",
	Long: `Check the health of the HIITBeep data by verifying:
  • The database can be opened (and is created if missing)
  • The stored keys can be listed
  • The routines and workout history parse

Exits with an error when any stored collection is corrupted.`,
	Annotations: map[string]string{skipOpenAnnotation: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		loc := current.loc

		_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 "+loc.T("health.title")))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, loc.Tf("health.database", i18n.Params{"path": current.dbPath}))

		kv, err := internal.OpenSQLiteStore(current.dbPath)
		if err != nil {
			_, _ = fmt.Fprintln(out, failStyle.Render("❌ "+loc.T("health.databaseFailed")))
			if healthcheckVerbose {
				_, _ = fmt.Fprintf(out, "   %v\n", err)
			}
			return err
		}
		current.attach(kv)
		loc = current.loc
		_, _ = fmt.Fprintln(out, okStyle.Render("✅ "+loc.T("health.databaseOk")))

		pairs, err := kv.Keys("")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, okStyle.Render("✅ "+loc.Tf("health.keys", i18n.Params{"count": len(pairs)})))
		if healthcheckVerbose {
			for _, pair := range pairs {
				_, _ = fmt.Fprintf(out, "   %s (%d bytes)\n", pair.Key, len(pair.Value))
			}
		}

		healthy := true
		routines := 0
		for _, c := range current.storage.Health() {
			if c.Err != nil {
				healthy = false
				_, _ = fmt.Fprintln(out, failStyle.Render("❌ "+loc.Tf("health.corrupt", i18n.Params{"key": c.Key, "error": loc.Error(c.Err)})))
				if healthcheckVerbose {
					_, _ = fmt.Fprintf(out, "   %v\n", c.Err)
				}
				continue
			}
			okKey := "health.routinesOk"
			if c.Key == internal.StorageKeyLogs {
				okKey = "health.logsOk"
			} else {
				routines = c.Count
			}
			_, _ = fmt.Fprintln(out, okStyle.Render("✅ "+loc.Tf(okKey, i18n.Params{"count": c.Count})))
		}
		_, _ = fmt.Fprintln(out)

		if !healthy {
			_, _ = fmt.Fprintln(out, failStyle.Render(loc.T("health.unhealthy")))
			return errUnhealthy
		}
		_, _ = fmt.Fprintln(out, okStyle.Render(loc.T("health.healthy")))
		if routines == 0 {
			internal.PrintInfo(loc.T("routines.empty"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
