package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

var (
	routineName      string
	routineIntervals []string
	routineReps      int
)

// routinesCmd groups the routine commands
var routinesCmd = &cobra.Command{
	Use:     "routines",
	Aliases: []string{"routine"},
	Short:   "Manage saved routines",
	Long: `Create, inspect, change and delete saved routines.

Intervals are given as name:seconds[:color[:type[:sets[:rest]]]], where type
is one of interval, repeat or weights. Routine IDs may be shortened to any
unique prefix.`,
}

var routinesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved routines, most recently used first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		displayRoutines(cmd.OutOrStdout(), current.loc, current.store.Routines(), time.Now())
		return nil
	},
}

var routinesShowCmd = &cobra.Command{
	Use:   "show <routine-id>",
	Short: "Show a routine and its intervals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routine, err := resolveRoutine(args[0])
		if err != nil {
			return err
		}
		displayRoutine(cmd.OutOrStdout(), current.loc, routine)
		return nil
	},
}

var routinesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a new routine",
	Example: `  hiitbeep routines save --name Tabata -i Work:20:red -i Rest:10:green --reps 8
  hiitbeep routines save --name "Leg Day" -i Squats:45:blue:weights:3:60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if routineReps < 1 {
			return &repetitionsError{}
		}
		intervals, err := parseIntervals(routineIntervals)
		if err != nil {
			return err
		}

		routine, err := current.store.Save(routineName, intervals, routineReps)
		if err != nil {
			return err
		}
		internal.PrintSuccess(current.loc.Tf("routines.saved", i18n.Params{"name": routine.Name, "id": routine.ID}))
		return nil
	},
}

var routinesUpdateCmd = &cobra.Command{
	Use:   "update <routine-id>",
	Short: "Change a routine's name, intervals or repetitions",
	Long: `Change a saved routine. Flags that are not given keep their current
value; --interval replaces the whole interval list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routine, err := resolveRoutine(args[0])
		if err != nil {
			return err
		}

		name := routine.Name
		if cmd.Flags().Changed("name") {
			name = routineName
		}
		reps := routine.Repetitions
		if cmd.Flags().Changed("reps") {
			if routineReps < 1 {
				return &repetitionsError{}
			}
			reps = routineReps
		}
		intervals := routine.Intervals
		if cmd.Flags().Changed("interval") {
			if intervals, err = parseIntervals(routineIntervals); err != nil {
				return err
			}
		}

		updated, err := current.store.Update(routine.ID, name, intervals, reps)
		if err != nil {
			return err
		}
		internal.PrintSuccess(current.loc.Tf("routines.updated", i18n.Params{"name": updated.Name}))
		return nil
	},
}

var routinesDeleteCmd = &cobra.Command{
	Use:     "delete <routine-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a routine",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routine, err := resolveRoutine(args[0])
		if err != nil {
			return err
		}
		if err := current.store.Delete(routine.ID); err != nil {
			return err
		}
		internal.PrintSuccess(current.loc.Tf("routines.deleted", i18n.Params{"id": routine.ID}))
		return nil
	},
}

// resolveRoutine finds a routine by full id or by a unique id prefix
func resolveRoutine(id string) (*internal.Routine, error) {
	if id == "" {
		return nil, &internal.NotFoundError{Kind: "routine", ID: id}
	}
	if routine, ok := current.store.Load(id); ok {
		return routine, nil
	}

	var match *internal.Routine
	for _, r := range current.store.Routines() {
		if strings.HasPrefix(r.ID, id) {
			if match != nil {
				internal.LogDebug("Routine prefix %q is ambiguous", id)
				return nil, &internal.NotFoundError{Kind: "routine", ID: id}
			}
			found := r
			match = &found
		}
	}
	if match == nil {
		return nil, &internal.NotFoundError{Kind: "routine", ID: id}
	}
	return match, nil
}

func displayRoutines(out io.Writer, loc *i18n.Localizer, routines []internal.Routine, now time.Time) {
	if len(routines) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 "+loc.T("routines.empty")))
		return
	}

	count := loc.Tf("routines.count", i18n.Params{"count": len(routines), "limit": internal.MaxRoutines})
	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %s (%s)", loc.T("routines.title"), count)))
	_, _ = fmt.Fprintln(out)

	t := newTable(out,
		loc.T("routines.columns.id"),
		loc.T("routines.columns.name"),
		loc.T("routines.columns.intervals"),
		loc.T("routines.columns.duration"),
		loc.T("routines.columns.repetitions"),
		loc.T("routines.columns.lastUsed"),
	)
	for _, r := range routines {
		lastUsed := loc.T("common.never")
		if r.LastUsed != nil && *r.LastUsed != 0 {
			lastUsed = internal.FormatRelative(r.GetLastUsed(), now)
		}
		t.row(
			idStyle.Render(shortID(r.ID)),
			nameStyle.Render(truncate(r.Name, 40)),
			countStyle.Render(strconv.Itoa(len(r.Intervals))),
			internal.FormatClock(r.TotalDuration()),
			strconv.Itoa(r.Repetitions),
			dateStyle.Render(lastUsed),
		)
	}
	t.flush()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 "+loc.Tf("routines.tip", i18n.Params{"id": routines[0].ID})))
}

func displayRoutine(out io.Writer, loc *i18n.Localizer, r *internal.Routine) {
	_, _ = fmt.Fprintln(out, sectionStyle.Render(r.Name))
	_, _ = fmt.Fprintln(out, idStyle.Render(r.ID))
	_, _ = fmt.Fprintln(out)

	lastUsed := loc.T("common.never")
	if r.LastUsed != nil && *r.LastUsed != 0 {
		lastUsed = formatTimestamp(r.GetLastUsed())
	}
	_, _ = fmt.Fprintln(out, loc.Tf("routine.repetitions", i18n.Params{"count": r.Repetitions}))
	_, _ = fmt.Fprintln(out, loc.Tf("routine.totalDuration", i18n.Params{"duration": internal.FormatClock(r.TotalDuration())}))
	_, _ = fmt.Fprintln(out, dateStyle.Render(loc.Tf("routine.createdAt", i18n.Params{"date": formatTimestamp(r.GetCreatedAt())})))
	_, _ = fmt.Fprintln(out, dateStyle.Render(loc.Tf("routine.lastUsed", i18n.Params{"date": lastUsed})))
	_, _ = fmt.Fprintln(out)

	_, _ = fmt.Fprintln(out, titleStyle.Render(loc.T("routine.intervals")))
	for i, iv := range r.Intervals {
		parts := []string{nameStyle.Render(iv.Name), internal.FormatClock(iv.Duration)}
		if iv.Color != "" {
			parts = append(parts, iv.Color)
		}
		if iv.Type != "" {
			parts = append(parts, loc.T("interval.types."+string(iv.Type)))
		}
		if iv.Sets != nil {
			parts = append(parts, loc.Tf("interval.sets", i18n.Params{"sets": *iv.Sets}))
		}
		if iv.RestTime != nil {
			parts = append(parts, loc.Tf("interval.rest", i18n.Params{"rest": *iv.RestTime}))
		}
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, strings.Join(parts, " · "))
	}
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func init() {
	rootCmd.AddCommand(routinesCmd)
	routinesCmd.AddCommand(routinesListCmd, routinesShowCmd, routinesSaveCmd, routinesUpdateCmd, routinesDeleteCmd)

	for _, c := range []*cobra.Command{routinesSaveCmd, routinesUpdateCmd} {
		c.Flags().StringVar(&routineName, "name", "", "Routine name")
		c.Flags().StringArrayVarP(&routineIntervals, "interval", "i", nil, "Interval as name:seconds[:color[:type[:sets[:rest]]]] (repeatable, in order)")
		c.Flags().IntVar(&routineReps, "reps", 1, "Number of repetitions of the whole interval list")
	}
	_ = routinesSaveCmd.MarkFlagRequired("name")
	_ = routinesSaveCmd.MarkFlagRequired("interval")
}
