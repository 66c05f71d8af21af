package internal

import (
	"time"
)

const (
	// MaxRoutines is the maximum number of saved routines
	MaxRoutines = 15
	// MaxWorkoutLogs is the maximum number of workout logs kept in history
	MaxWorkoutLogs = 100

	// ExportVersion is written to every exported document
	ExportVersion = "1.0"
)

// IntervalType classifies an interval inside a routine
type IntervalType string

const (
	IntervalTypeInterval IntervalType = "interval"
	IntervalTypeRepeat   IntervalType = "repeat"
	IntervalTypeWeights  IntervalType = "weights"
)

// Valid reports whether the type is one of the known interval kinds
func (t IntervalType) Valid() bool {
	switch t {
	case IntervalTypeInterval, IntervalTypeRepeat, IntervalTypeWeights:
		return true
	}
	return false
}

// Interval is a single timed block of a routine
type Interval struct {
	Name     string       `json:"name" yaml:"name"`
	Duration int          `json:"duration" yaml:"duration"` // seconds
	Color    string       `json:"color" yaml:"color"`
	Type     IntervalType `json:"type,omitempty" yaml:"type,omitempty"`
	Sets     *int         `json:"sets,omitempty" yaml:"sets,omitempty"`
	RestTime *int         `json:"restTime,omitempty" yaml:"restTime,omitempty"` // seconds
}

// Routine is a saved, ordered sequence of intervals
type Routine struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Intervals   []Interval `json:"intervals" yaml:"intervals"`
	Repetitions int        `json:"repetitions" yaml:"repetitions"`
	CreatedAt   int64      `json:"createdAt" yaml:"createdAt"`                   // unix millis
	LastUsed    *int64     `json:"lastUsed,omitempty" yaml:"lastUsed,omitempty"` // unix millis
}

// WorkoutLog records one completed workout
type WorkoutLog struct {
	ID                   string `json:"id" yaml:"id"`
	RoutineID            string `json:"routineId" yaml:"routineId"`
	RoutineName          string `json:"routineName" yaml:"routineName"`
	CompletedAt          int64  `json:"completedAt" yaml:"completedAt"` // unix millis
	Duration             int    `json:"duration" yaml:"duration"`       // seconds
	RepetitionsCompleted int    `json:"repetitionsCompleted" yaml:"repetitionsCompleted"`
}

// Stats aggregates the stored collections
type Stats struct {
	TotalRoutines int `json:"totalRoutines" yaml:"totalRoutines"`
	TotalWorkouts int `json:"totalWorkouts" yaml:"totalWorkouts"`
	TotalMinutes  int `json:"totalMinutes" yaml:"totalMinutes"`
}

// Snapshot is the versioned export document
type Snapshot struct {
	Version     string       `json:"version" yaml:"version"`
	ExportDate  string       `json:"exportDate" yaml:"exportDate"`
	Routines    []Routine    `json:"routines" yaml:"routines"`
	WorkoutLogs []WorkoutLog `json:"workoutLogs" yaml:"workoutLogs"`
}

// ImportSummary reports what an import added
type ImportSummary struct {
	Routines int `json:"routines"`
	Logs     int `json:"logs"`
	// Skipped names the incoming routines dropped as duplicates
	Skipped []string `json:"skipped,omitempty"`
}

// SortKey returns lastUsed when set, createdAt otherwise
func (r *Routine) SortKey() int64 {
	if r.LastUsed != nil && *r.LastUsed != 0 {
		return *r.LastUsed
	}
	return r.CreatedAt
}

// GetCreatedAt returns CreatedAt as time.Time
func (r *Routine) GetCreatedAt() time.Time {
	return time.UnixMilli(r.CreatedAt)
}

// GetLastUsed returns the last-used time, falling back to CreatedAt
func (r *Routine) GetLastUsed() time.Time {
	return time.UnixMilli(r.SortKey())
}

// TotalDuration returns the seconds one full run of the routine takes
func (r *Routine) TotalDuration() int {
	perRound := 0
	for _, iv := range r.Intervals {
		perRound += iv.Duration
	}
	reps := r.Repetitions
	if reps < 1 {
		reps = 1
	}
	return perRound * reps
}

// GetCompletedAt returns CompletedAt as time.Time
func (l *WorkoutLog) GetCompletedAt() time.Time {
	return time.UnixMilli(l.CompletedAt)
}

// Clone returns a deep copy of the interval
func (iv Interval) Clone() Interval {
	out := iv
	if iv.Sets != nil {
		sets := *iv.Sets
		out.Sets = &sets
	}
	if iv.RestTime != nil {
		rest := *iv.RestTime
		out.RestTime = &rest
	}
	return out
}

// CloneIntervals deep-copies a slice of intervals so stored state never
// aliases caller-owned data
func CloneIntervals(intervals []Interval) []Interval {
	out := make([]Interval, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Clone()
	}
	return out
}

// Clone returns a deep copy of the routine
func (r Routine) Clone() Routine {
	out := r
	out.Intervals = CloneIntervals(r.Intervals)
	if r.LastUsed != nil {
		lastUsed := *r.LastUsed
		out.LastUsed = &lastUsed
	}
	return out
}
