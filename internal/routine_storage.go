package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// StorageKeyRoutines holds the JSON array of routines
	StorageKeyRoutines = "hiitbeep_routines"
	// StorageKeyLogs holds the JSON array of workout logs, newest first
	StorageKeyLogs = "hiitbeep_workout_logs"

	exportDateLayout = "2006-01-02T15:04:05.000Z07:00"
)

// RoutineStorage persists routines and workout logs in a KeyValueStore.
//
// Reads never fail outwardly: a missing or unparsable collection is logged
// and treated as empty. Writes log and return typed errors
// (*CapacityError, *NotFoundError, *FormatError, *StorageError,
// *ParseError) and leave storage untouched when they fail. A write never
// overwrites a collection it could not parse.
type RoutineStorage struct {
	kv    KeyValueStore
	clock Clock
	newID func() string
}

// Option configures a RoutineStorage
type Option func(*RoutineStorage)

// WithClock sets the clock used for timestamps
func WithClock(clock Clock) Option {
	return func(s *RoutineStorage) {
		s.clock = clock
	}
}

// WithIDGenerator sets the function used to mint routine and log ids
func WithIDGenerator(fn func() string) Option {
	return func(s *RoutineStorage) {
		s.newID = fn
	}
}

// NewRoutineStorage creates a new RoutineStorage on top of kv
func NewRoutineStorage(kv KeyValueStore, opts ...Option) *RoutineStorage {
	s := &RoutineStorage{
		kv:    kv,
		clock: SystemClock{},
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RoutineStorage) now() int64 {
	return s.clock.Now().UnixMilli()
}

// SaveRoutine stores a new routine. It fails with *CapacityError once
// MaxRoutines routines exist.
func (s *RoutineStorage) SaveRoutine(name string, intervals []Interval, repetitions int) (*Routine, error) {
	routines, err := s.readRoutines()
	if err != nil {
		LogError("Failed to save routine: %v", err)
		return nil, err
	}

	if len(routines) >= MaxRoutines {
		return nil, &CapacityError{Limit: MaxRoutines, Existing: len(routines)}
	}

	now := s.now()
	lastUsed := now
	routine := Routine{
		ID:          s.newID(),
		Name:        name,
		Intervals:   CloneIntervals(intervals),
		Repetitions: repetitions,
		CreatedAt:   now,
		LastUsed:    &lastUsed,
	}

	routines = append(routines, routine)
	if err := s.writeJSON(StorageKeyRoutines, routines); err != nil {
		LogError("Failed to save routine: %v", err)
		return nil, err
	}

	LogDebug("Saved routine %s (%q)", routine.ID, routine.Name)
	out := routine.Clone()
	return &out, nil
}

// UpdateRoutine replaces the name, intervals and repetitions of an existing
// routine, keeping its id and creation time and refreshing lastUsed
func (s *RoutineStorage) UpdateRoutine(id, name string, intervals []Interval, repetitions int) (*Routine, error) {
	routines, err := s.readRoutines()
	if err != nil {
		LogError("Failed to update routine: %v", err)
		return nil, err
	}

	idx := indexOfRoutine(routines, id)
	if idx == -1 {
		return nil, &NotFoundError{Kind: "routine", ID: id}
	}

	lastUsed := s.now()
	updated := routines[idx]
	updated.Name = name
	updated.Intervals = CloneIntervals(intervals)
	updated.Repetitions = repetitions
	updated.LastUsed = &lastUsed
	routines[idx] = updated

	if err := s.writeJSON(StorageKeyRoutines, routines); err != nil {
		LogError("Failed to update routine: %v", err)
		return nil, err
	}

	out := updated.Clone()
	return &out, nil
}

// LoadRoutines returns all routines, most recently used first. Routines
// with equal keys keep their stored order.
func (s *RoutineStorage) LoadRoutines() []Routine {
	routines, err := s.readRoutines()
	if err != nil {
		LogError("Failed to load routines: %v", err)
		return []Routine{}
	}
	return routines
}

// DeleteRoutine removes the routine with id. Deleting an unknown id is not
// an error.
func (s *RoutineStorage) DeleteRoutine(id string) error {
	routines, err := s.readRoutines()
	if err != nil {
		LogError("Failed to delete routine: %v", err)
		return err
	}

	filtered := make([]Routine, 0, len(routines))
	for _, r := range routines {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}

	if err := s.writeJSON(StorageKeyRoutines, filtered); err != nil {
		LogError("Failed to delete routine: %v", err)
		return err
	}
	return nil
}

// UpdateRoutineLastUsed marks the routine as used now. Unknown ids and
// storage failures are logged and otherwise ignored.
func (s *RoutineStorage) UpdateRoutineLastUsed(id string) {
	routines, err := s.readRoutines()
	if err != nil {
		LogError("Failed to update routine last used: %v", err)
		return
	}

	idx := indexOfRoutine(routines, id)
	if idx == -1 {
		LogDebug("Routine %s not found, last used not updated", id)
		return
	}

	lastUsed := s.now()
	routines[idx].LastUsed = &lastUsed
	if err := s.writeJSON(StorageKeyRoutines, routines); err != nil {
		LogError("Failed to update routine last used: %v", err)
	}
}

// LogWorkout records a completed workout at the front of the history,
// drops the oldest entries beyond MaxWorkoutLogs and marks the routine as
// used
func (s *RoutineStorage) LogWorkout(routineID, routineName string, duration, repetitionsCompleted int) (*WorkoutLog, error) {
	logs, err := s.readLogs()
	if err != nil {
		LogError("Failed to log workout: %v", err)
		return nil, err
	}

	entry := WorkoutLog{
		ID:                   s.newID(),
		RoutineID:            routineID,
		RoutineName:          routineName,
		CompletedAt:          s.now(),
		Duration:             duration,
		RepetitionsCompleted: repetitionsCompleted,
	}

	logs = append([]WorkoutLog{entry}, logs...)
	if len(logs) > MaxWorkoutLogs {
		logs = logs[:MaxWorkoutLogs]
	}

	if err := s.writeJSON(StorageKeyLogs, logs); err != nil {
		LogError("Failed to log workout: %v", err)
		return nil, err
	}

	s.UpdateRoutineLastUsed(routineID)
	return &entry, nil
}

// LoadWorkoutLogs returns the workout history as stored, newest first
func (s *RoutineStorage) LoadWorkoutLogs() []WorkoutLog {
	logs, err := s.readLogs()
	if err != nil {
		LogError("Failed to load workout logs: %v", err)
		return []WorkoutLog{}
	}
	return logs
}

// Snapshot returns the current export document
func (s *RoutineStorage) Snapshot() *Snapshot {
	return &Snapshot{
		Version:     ExportVersion,
		ExportDate:  s.clock.Now().UTC().Format(exportDateLayout),
		Routines:    s.LoadRoutines(),
		WorkoutLogs: s.LoadWorkoutLogs(),
	}
}

// ExportData serializes the export document as indented JSON
func (s *RoutineStorage) ExportData() (string, error) {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportData merges an exported document into storage.
//
// Every incoming routine needs a name. Incoming routines whose name matches
// an existing routine (ignoring case) are skipped and reported. The import is rejected as a whole if the result would exceed
// MaxRoutines. Incoming logs are appended after the existing ones and the
// combined list is cut to MaxWorkoutLogs without re-sorting.
func (s *RoutineStorage) ImportData(doc string) (*ImportSummary, error) {
	incoming, incomingLogs, err := decodeImport(doc)
	if err != nil {
		LogError("Failed to import data: %v", err)
		return nil, err
	}

	existing, err := s.readRoutines()
	if err != nil {
		LogError("Failed to import data: %v", err)
		return nil, err
	}
	existingLogs, err := s.readLogs()
	if err != nil {
		LogError("Failed to import data: %v", err)
		return nil, err
	}

	lower := cases.Lower(language.Und)
	names := make(map[string]bool, len(existing))
	ids := make(map[string]bool, len(existing))
	for _, r := range existing {
		names[lower.String(r.Name)] = true
		ids[r.ID] = true
	}

	var skipped []string
	added := make([]Routine, 0, len(incoming))
	for _, r := range incoming {
		if names[lower.String(r.Name)] {
			skipped = append(skipped, r.Name)
			continue
		}
		if r.ID == "" || ids[r.ID] {
			id := s.newID()
			LogInfo("Imported routine %q reuses id %q, assigned %s", r.Name, r.ID, id)
			r.ID = id
		}
		ids[r.ID] = true
		added = append(added, r)
	}

	if len(existing)+len(added) > MaxRoutines {
		return nil, &CapacityError{Limit: MaxRoutines, Existing: len(existing), Incoming: len(added)}
	}

	routines := append(existing, added...)
	logs := append(existingLogs, incomingLogs...)
	if len(logs) > MaxWorkoutLogs {
		logs = logs[:MaxWorkoutLogs]
	}

	if err := s.writeBoth(routines, logs); err != nil {
		LogError("Failed to import data: %v", err)
		return nil, err
	}

	return &ImportSummary{Routines: len(added), Logs: len(incomingLogs), Skipped: skipped}, nil
}

// GetStats aggregates the stored routines and logs
func (s *RoutineStorage) GetStats() Stats {
	return ComputeStats(s.LoadRoutines(), s.LoadWorkoutLogs())
}

// ComputeStats aggregates routines and logs. Minutes are counted per
// workout, rounded down.
func ComputeStats(routines []Routine, logs []WorkoutLog) Stats {
	minutes := 0
	for _, l := range logs {
		minutes += floorDiv(l.Duration, 60)
	}
	return Stats{
		TotalRoutines: len(routines),
		TotalWorkouts: len(logs),
		TotalMinutes:  minutes,
	}
}

// CollectionHealth describes one stored collection
type CollectionHealth struct {
	Key   string
	Count int
	Err   error
}

// Health parses both stored collections without degrading failures to
// empty results
func (s *RoutineStorage) Health() []CollectionHealth {
	routines, err := s.readRoutines()
	out := []CollectionHealth{{Key: StorageKeyRoutines, Count: len(routines), Err: err}}
	logs, err := s.readLogs()
	return append(out, CollectionHealth{Key: StorageKeyLogs, Count: len(logs), Err: err})
}

// writeBoth persists routines then logs, restoring the previous routines
// value if the logs write fails
func (s *RoutineStorage) writeBoth(routines []Routine, logs []WorkoutLog) error {
	prev, hadPrev, err := s.kv.Get(StorageKeyRoutines)
	if err != nil {
		return err
	}

	if err := s.writeJSON(StorageKeyRoutines, routines); err != nil {
		return err
	}

	if err := s.writeJSON(StorageKeyLogs, logs); err != nil {
		var restoreErr error
		if hadPrev {
			restoreErr = s.kv.Set(StorageKeyRoutines, prev)
		} else {
			restoreErr = s.kv.Remove(StorageKeyRoutines)
		}
		if restoreErr != nil {
			LogError("Failed to restore routines after import failure: %v", restoreErr)
		}
		return err
	}
	return nil
}

func (s *RoutineStorage) readRoutines() ([]Routine, error) {
	routines := []Routine{}
	if err := s.readJSON(StorageKeyRoutines, &routines); err != nil {
		return nil, err
	}
	if routines == nil {
		routines = []Routine{}
	}
	sortRoutines(routines)
	return routines, nil
}

func (s *RoutineStorage) readLogs() ([]WorkoutLog, error) {
	logs := []WorkoutLog{}
	if err := s.readJSON(StorageKeyLogs, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []WorkoutLog{}
	}
	return logs, nil
}

// readJSON leaves v untouched when the key is absent or empty
func (s *RoutineStorage) readJSON(key string, v any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &ParseError{Source: "storage", Key: key, Err: err}
	}
	return nil
}

func (s *RoutineStorage) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Key: key, Op: "set", Err: err}
	}
	return s.kv.Set(key, string(data))
}

// decodeImport validates the document shape and decodes its collections
func decodeImport(doc string) ([]Routine, []WorkoutLog, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, &FormatError{Field: "routines", Reason: "is missing"}
		}
		return nil, nil, &ParseError{Source: "import", Key: "document", Err: err}
	}

	rawRoutines, ok := fields["routines"]
	if !ok || !isJSONArray(rawRoutines) {
		return nil, nil, &FormatError{Field: "routines", Reason: "must be an array"}
	}
	var routines []Routine
	if err := json.Unmarshal(rawRoutines, &routines); err != nil {
		return nil, nil, &ParseError{Source: "import", Key: "routines", Err: err}
	}
	for i, r := range routines {
		if r.Name == "" {
			return nil, nil, &FormatError{Field: "routines", Reason: "has no name", Entry: i + 1}
		}
	}

	logs := []WorkoutLog{}
	if rawLogs, ok := fields["workoutLogs"]; ok && !isJSONNull(rawLogs) {
		if !isJSONArray(rawLogs) {
			return nil, nil, &FormatError{Field: "workoutLogs", Reason: "must be an array"}
		}
		if err := json.Unmarshal(rawLogs, &logs); err != nil {
			return nil, nil, &ParseError{Source: "import", Key: "workoutLogs", Err: err}
		}
	}

	return routines, logs, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func sortRoutines(routines []Routine) {
	sort.SliceStable(routines, func(i, j int) bool {
		return routines[i].SortKey() > routines[j].SortKey()
	})
}

func indexOfRoutine(routines []Routine, id string) int {
	for i := range routines {
		if routines[i].ID == id {
			return i
		}
	}
	return -1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
