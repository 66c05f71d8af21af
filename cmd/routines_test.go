package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/hiitbeep/internal"
	"github.com/iksnae/hiitbeep/testutil"
)

func TestRoutinesLifecycle(t *testing.T) {
	db := testutil.TempDBPath(t)

	res := runCLI(t, db, "routines", "list")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "No saved routines yet")

	res = runCLI(t, db, "routines", "save", "--name", "Tabata", "-i", "Work:20:red:interval", "-i", "Rest:10", "--reps", "8")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, `Routine "Tabata" saved`)

	routines := openStorage(t, db).LoadRoutines()
	require.Len(t, routines, 1)
	id := routines[0].ID
	assert.Equal(t, 8, routines[0].Repetitions)
	assert.Equal(t, "green", routines[0].Intervals[1].Color)

	res = runCLI(t, db, "routines", "list")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Tabata")
	assert.Contains(t, res.Out, "1 of 15 routines")
	assert.Contains(t, res.Out, "4:00")
	assert.Contains(t, res.Out, id)

	res = runCLI(t, db, "routines", "show", id[:8])
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Repetitions: 8")
	assert.Contains(t, res.Out, "Total duration: 4:00")
	assert.Contains(t, res.Out, "1. Work · 0:20 · red · interval")

	res = runCLI(t, db, "routines", "update", id, "--name", "Tabata Plus")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, `Routine "Tabata Plus" updated`)

	updated := openStorage(t, db).LoadRoutines()
	require.Len(t, updated, 1)
	assert.Equal(t, id, updated[0].ID)
	assert.Equal(t, "Tabata Plus", updated[0].Name)
	assert.Equal(t, routines[0].CreatedAt, updated[0].CreatedAt)
	assert.Equal(t, routines[0].Intervals, updated[0].Intervals)
	assert.Equal(t, 8, updated[0].Repetitions)

	res = runCLI(t, db, "routines", "delete", id)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "deleted")
	assert.Empty(t, openStorage(t, db).LoadRoutines())
}

func TestRoutinesSave_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "zero repetitions",
			args:    []string{"--name", "X", "-i", "Work:20", "--reps", "0"},
			wantMsg: "Repetitions must be at least 1",
		},
		{
			name:    "bad interval",
			args:    []string{"--name", "X", "-i", "Work"},
			wantMsg: `Invalid interval "Work"`,
		},
		{
			name:    "missing interval",
			args:    []string{"--name", "X"},
			wantMsg: "interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.TempDBPath(t)
			res := runCLI(t, db, append([]string{"routines", "save"}, tt.args...)...)
			require.Error(t, res.Err)
			assert.Contains(t, res.Msg, tt.wantMsg)
		})
	}
}

func TestRoutinesSave_CapacityReached(t *testing.T) {
	db := testutil.TempDBPath(t)
	storage := openStorage(t, db)
	for i := 0; i < internal.MaxRoutines; i++ {
		_, err := storage.SaveRoutine(fmt.Sprintf("R%d", i), []internal.Interval{{Name: "W", Duration: 10, Color: "red"}}, 1)
		require.NoError(t, err)
	}

	res := runCLI(t, db, "routines", "save", "--name", "One more", "-i", "Work:20")
	var capErr *internal.CapacityError
	require.ErrorAs(t, res.Err, &capErr)
	assert.Equal(t, "Limit of 15 routines reached. Delete a routine to add another.", res.Msg)
	assert.Len(t, storage.LoadRoutines(), internal.MaxRoutines)
}

func TestRoutines_NotFound(t *testing.T) {
	db := seededDB(t)

	for _, args := range [][]string{
		{"routines", "show", "nope"},
		{"routines", "update", "nope", "--name", "x"},
		{"routines", "delete", "nope"},
		{"workout", "log", "nope"},
	} {
		t.Run(args[0]+" "+args[1], func(t *testing.T) {
			res := runCLI(t, db, args...)
			var nf *internal.NotFoundError
			require.ErrorAs(t, res.Err, &nf)
			assert.Equal(t, "Routine not found: nope", res.Msg)
		})
	}
}

func TestRoutines_AmbiguousPrefix(t *testing.T) {
	db := seededDB(t)
	res := runCLI(t, db, "routines", "show", "r-")
	var nf *internal.NotFoundError
	assert.ErrorAs(t, res.Err, &nf)
}

func TestRoutinesList_Order(t *testing.T) {
	db := seededDB(t)
	res := runCLI(t, db, "routines", "list")
	require.NoError(t, res.Err)

	legs := strings.Index(res.Out, "Leg Day")
	core := strings.Index(res.Out, "Core Blast")
	tabata := strings.Index(res.Out, "Tabata")
	assert.True(t, legs < core && core < tabata, "routines not most recently used first:\n%s", res.Out)
	assert.Contains(t, res.Out, "never")
}
