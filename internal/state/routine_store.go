package state

import (
	"github.com/iksnae/hiitbeep/internal"
)

// RoutineService is the persistence the RoutineStore caches
type RoutineService interface {
	LoadRoutines() []internal.Routine
	SaveRoutine(name string, intervals []internal.Interval, repetitions int) (*internal.Routine, error)
	UpdateRoutine(id, name string, intervals []internal.Interval, repetitions int) (*internal.Routine, error)
	DeleteRoutine(id string) error
	LogWorkout(routineID, routineName string, duration, repetitionsCompleted int) (*internal.WorkoutLog, error)
	GetStats() internal.Stats
}

// RoutineStore is an observable cache of the saved routines.
//
// The cached list is updated optimistically after each successful write
// and is not authoritative: call Refresh when storage may have changed
// elsewhere. Stats are recomputed from the service on every change of the
// cached list, so they include workout logs.
type RoutineStore struct {
	service  RoutineService
	routines *Observable[[]internal.Routine]
	stats    *Derived[internal.Stats]
}

// NewRoutineStore creates a store and loads the routines from service
func NewRoutineStore(service RoutineService) *RoutineStore {
	s := &RoutineStore{
		service:  service,
		routines: NewObservable(service.LoadRoutines()),
	}
	s.stats = Derive[[]internal.Routine](s.routines, func([]internal.Routine) internal.Stats {
		return service.GetStats()
	})
	return s
}

// Routines returns the cached routines
func (s *RoutineStore) Routines() []internal.Routine {
	return s.routines.Get()
}

// Subscribe watches the cached routines
func (s *RoutineStore) Subscribe(fn func([]internal.Routine)) func() {
	return s.routines.Subscribe(fn)
}

// Stats returns the derived statistics
func (s *RoutineStore) Stats() *Derived[internal.Stats] {
	return s.stats
}

// Refresh reloads the routines from storage
func (s *RoutineStore) Refresh() {
	s.routines.Set(s.service.LoadRoutines())
}

// Save stores a new routine and appends it to the cache on success
func (s *RoutineStore) Save(name string, intervals []internal.Interval, repetitions int) (*internal.Routine, error) {
	routine, err := s.service.SaveRoutine(name, intervals, repetitions)
	if err != nil {
		return nil, err
	}
	s.routines.Update(func(current []internal.Routine) []internal.Routine {
		next := make([]internal.Routine, 0, len(current)+1)
		next = append(next, current...)
		return append(next, routine.Clone())
	})
	return routine, nil
}

// Update rewrites an existing routine and replaces it in the cache on
// success
func (s *RoutineStore) Update(id, name string, intervals []internal.Interval, repetitions int) (*internal.Routine, error) {
	routine, err := s.service.UpdateRoutine(id, name, intervals, repetitions)
	if err != nil {
		return nil, err
	}
	s.routines.Update(func(current []internal.Routine) []internal.Routine {
		next := make([]internal.Routine, len(current))
		copy(next, current)
		for i := range next {
			if next[i].ID == id {
				next[i] = routine.Clone()
			}
		}
		return next
	})
	return routine, nil
}

// Delete removes a routine and drops it from the cache on success
func (s *RoutineStore) Delete(id string) error {
	if err := s.service.DeleteRoutine(id); err != nil {
		return err
	}
	s.routines.Update(func(current []internal.Routine) []internal.Routine {
		next := make([]internal.Routine, 0, len(current))
		for _, r := range current {
			if r.ID != id {
				next = append(next, r)
			}
		}
		return next
	})
	return nil
}

// Load looks a routine up in storage, bypassing the cache
func (s *RoutineStore) Load(id string) (*internal.Routine, bool) {
	for _, r := range s.service.LoadRoutines() {
		if r.ID == id {
			found := r
			return &found, true
		}
	}
	return nil, false
}

// LogWorkout records a completed workout and reloads the cache, since
// logging changes the routine's last-used time
func (s *RoutineStore) LogWorkout(routineID, routineName string, duration, repetitionsCompleted int) (*internal.WorkoutLog, error) {
	entry, err := s.service.LogWorkout(routineID, routineName, duration, repetitionsCompleted)
	if err != nil {
		return nil, err
	}
	s.Refresh()
	return entry, nil
}
