package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

// unsupportedLanguageError is returned by lang set for unknown codes
type unsupportedLanguageError struct {
	Code string
}

func (e *unsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Code)
}

// MessageKey returns the translation key for this error
func (e *unsupportedLanguageError) MessageKey() string { return "language.unsupported" }

// MessageParams returns the translation parameters for this error
func (e *unsupportedLanguageError) MessageParams() map[string]any {
	return map[string]any{"code": e.Code}
}

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the display language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return langGetCmd.RunE(cmd, args)
	},
}

var langGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := current.loc.Current()
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), current.loc.Tf("language.current", i18n.Params{"flag": lang.Flag, "name": lang.Name}))
		return nil
	},
}

var langSetCmd = &cobra.Command{
	Use:       "set <code>",
	Short:     "Change and remember the display language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"es", "en"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !current.prefs.SetLanguage(args[0]) {
			return &unsupportedLanguageError{Code: args[0]}
		}
		// report in the new language even under --lang
		lang := current.prefs.Current()
		internal.PrintSuccess(current.prefs.Tf("language.changed", i18n.Params{"flag": lang.Flag, "name": lang.Name}))
		return nil
	},
}

var langListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the supported languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		active := current.loc.Language()
		_, _ = fmt.Fprintln(out, titleStyle.Render(current.loc.T("language.available")))
		for _, lang := range i18n.Languages() {
			marker := " "
			if lang.Code == active {
				marker = okStyle.Render("*")
			}
			_, _ = fmt.Fprintf(out, "%s %s  %s %s\n", marker, lang.Code, lang.Flag, lang.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
	langCmd.AddCommand(langGetCmd, langSetCmd, langListCmd)
}
