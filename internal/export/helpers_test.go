package export

import "github.com/iksnae/hiitbeep/internal"

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleSnapshot() *internal.Snapshot {
	return &internal.Snapshot{
		Version:    internal.ExportVersion,
		ExportDate: "2024-03-01T09:00:00.000Z",
		Routines: []internal.Routine{
			{
				ID:   "r-legs",
				Name: "Leg Day",
				Intervals: []internal.Interval{
					{Name: "Squats", Duration: 45, Color: "blue", Type: internal.IntervalTypeWeights, Sets: intPtr(3), RestTime: intPtr(60)},
				},
				Repetitions: 1,
				CreatedAt:   1709283600000,
				LastUsed:    int64Ptr(1709287200000),
			},
			{
				ID:   "r-tabata",
				Name: "Tabata",
				Intervals: []internal.Interval{
					{Name: "Work", Duration: 20, Color: "red", Type: internal.IntervalTypeInterval},
					{Name: "Rest", Duration: 10, Color: "green"},
				},
				Repetitions: 8,
				CreatedAt:   1709280000000,
			},
		},
		WorkoutLogs: []internal.WorkoutLog{
			{ID: "l-2", RoutineID: "r-legs", RoutineName: "Leg Day", CompletedAt: 1709287200000, Duration: 185, RepetitionsCompleted: 1},
			{ID: "l-1", RoutineID: "r-tabata", RoutineName: "Tabata", CompletedAt: 1709283600000, Duration: 240, RepetitionsCompleted: 8},
		},
	}
}

func emptySnapshot() *internal.Snapshot {
	return &internal.Snapshot{
		Version:     internal.ExportVersion,
		ExportDate:  "2024-03-01T09:00:00.000Z",
		Routines:    []internal.Routine{},
		WorkoutLogs: []internal.WorkoutLog{},
	}
}
