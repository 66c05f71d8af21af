package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/internal/i18n"
)

// MarkdownExporter renders a human-readable report of the snapshot
type MarkdownExporter struct {
	translate i18n.TranslateFunc
}

// Export exports a snapshot to Markdown format
func (e *MarkdownExporter) Export(snapshot *internal.Snapshot, w io.Writer) error {
	t := e.translate
	stats := internal.ComputeStats(snapshot.Routines, snapshot.WorkoutLogs)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("report.title", nil))
	fmt.Fprintf(&b, "_%s_\n\n", t("report.exported", i18n.Params{"date": snapshot.ExportDate}))

	fmt.Fprintf(&b, "## %s\n\n", t("stats.title", nil))
	fmt.Fprintf(&b, "- %s\n", t("stats.routines", i18n.Params{"count": stats.TotalRoutines}))
	fmt.Fprintf(&b, "- %s\n", t("stats.workouts", i18n.Params{"count": stats.TotalWorkouts}))
	fmt.Fprintf(&b, "- %s\n\n", t("stats.minutes", i18n.Params{"count": stats.TotalMinutes}))

	fmt.Fprintf(&b, "## %s\n\n", t("routines.title", nil))
	if len(snapshot.Routines) == 0 {
		fmt.Fprintf(&b, "%s\n\n", t("common.none", nil))
	}
	for _, r := range snapshot.Routines {
		fmt.Fprintf(&b, "### %s\n\n", escapeMarkdown(r.Name))
		fmt.Fprintf(&b, "- %s\n", t("routine.repetitions", i18n.Params{"count": r.Repetitions}))
		fmt.Fprintf(&b, "- %s\n", t("routine.totalDuration", i18n.Params{"duration": internal.FormatClock(r.TotalDuration())}))
		fmt.Fprintf(&b, "- %s\n\n", t("routine.createdAt", i18n.Params{"date": formatMillis(r.CreatedAt)}))

		for i, iv := range r.Intervals {
			fmt.Fprintf(&b, "%d. %s\n", i+1, describeInterval(t, iv))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", t("history.title", nil))
	if len(snapshot.WorkoutLogs) == 0 {
		fmt.Fprintf(&b, "%s\n", t("history.empty", nil))
	} else {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			t("history.columns.date", nil),
			t("history.columns.routine", nil),
			t("history.columns.duration", nil),
			t("history.columns.repetitions", nil),
		)
		b.WriteString("|---|---|---|---|\n")
		for _, l := range snapshot.WorkoutLogs {
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
				formatMillis(l.CompletedAt),
				escapeTableCell(l.RoutineName),
				internal.FormatClock(l.Duration),
				l.RepetitionsCompleted,
			)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func describeInterval(t i18n.TranslateFunc, iv internal.Interval) string {
	parts := []string{fmt.Sprintf("**%s** %s", escapeMarkdown(iv.Name), internal.FormatClock(iv.Duration))}
	if iv.Type != "" {
		parts = append(parts, t("interval.types."+string(iv.Type), nil))
	}
	if iv.Sets != nil {
		parts = append(parts, t("interval.sets", i18n.Params{"sets": *iv.Sets}))
	}
	if iv.RestTime != nil {
		parts = append(parts, t("interval.rest", i18n.Params{"rest": *iv.RestTime}))
	}
	return strings.Join(parts, ", ")
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

// escapeMarkdown escapes emphasis markers in user text
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return text
}

func escapeTableCell(text string) string {
	return strings.ReplaceAll(escapeMarkdown(text), "|", "\\|")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
