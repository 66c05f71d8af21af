package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

var (
	workoutDuration int
	workoutReps     int
	historyLimit    int
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Record completed workouts",
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <routine-id>",
	Short: "Record a completed workout of a routine",
	Long: `Record a completed workout at the top of the history and mark the
routine as used. Duration and repetitions default to one full run of the
routine.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routine, err := resolveRoutine(args[0])
		if err != nil {
			return err
		}

		duration := routine.TotalDuration()
		if cmd.Flags().Changed("duration") {
			duration = workoutDuration
		}
		reps := routine.Repetitions
		if cmd.Flags().Changed("reps") {
			reps = workoutReps
		}

		entry, err := current.store.LogWorkout(routine.ID, routine.Name, duration, reps)
		if err != nil {
			return err
		}
		internal.PrintSuccess(current.loc.Tf("workout.logged", i18n.Params{
			"name":     entry.RoutineName,
			"duration": internal.FormatClock(entry.Duration),
		}))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed workouts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logs := current.storage.LoadWorkoutLogs()
		if historyLimit > 0 && len(logs) > historyLimit {
			logs = logs[:historyLimit]
		}
		displayHistory(cmd.OutOrStdout(), current.loc, logs, time.Now())
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals across routines and workouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		loc := current.loc
		stats := current.store.Stats().Get()

		_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 "+loc.T("stats.title")))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, loc.Tf("stats.routines", i18n.Params{"count": countStyle.Render(strconv.Itoa(stats.TotalRoutines))}))
		_, _ = fmt.Fprintln(out, loc.Tf("stats.workouts", i18n.Params{"count": countStyle.Render(strconv.Itoa(stats.TotalWorkouts))}))
		_, _ = fmt.Fprintln(out, loc.Tf("stats.minutes", i18n.Params{"count": countStyle.Render(strconv.Itoa(stats.TotalMinutes))}))
		return nil
	},
}

func displayHistory(out io.Writer, loc *i18n.Localizer, logs []internal.WorkoutLog, now time.Time) {
	if len(logs) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("🏁 "+loc.T("history.empty")))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render("🏁 "+loc.T("history.title")))
	_, _ = fmt.Fprintln(out)

	t := newTable(out,
		loc.T("history.columns.date"),
		loc.T("history.columns.routine"),
		loc.T("history.columns.duration"),
		loc.T("history.columns.repetitions"),
	)
	for _, l := range logs {
		t.row(
			dateStyle.Render(internal.FormatRelative(l.GetCompletedAt(), now)),
			nameStyle.Render(truncate(l.RoutineName, 40)),
			internal.FormatClock(l.Duration),
			strconv.Itoa(l.RepetitionsCompleted),
		)
	}
	t.flush()
}

func init() {
	rootCmd.AddCommand(workoutCmd, historyCmd, statsCmd)
	workoutCmd.AddCommand(workoutLogCmd)

	workoutLogCmd.Flags().IntVar(&workoutDuration, "duration", 0, "Seconds the workout took (default: the routine's total duration)")
	workoutLogCmd.Flags().IntVar(&workoutReps, "reps", 0, "Repetitions completed (default: the routine's repetitions)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most this many workouts (0 for all)")
}
