package testutil

const (
	// RoutinesKey mirrors internal.StorageKeyRoutines
	RoutinesKey = "hiitbeep_routines"
	// LogsKey mirrors internal.StorageKeyLogs
	LogsKey = "hiitbeep_workout_logs"
)

// SampleRoutinesJSON holds three routines stored oldest-used first
const SampleRoutinesJSON = `[
  {"id":"r-tabata","name":"Tabata","intervals":[{"name":"Work","duration":20,"color":"red","type":"interval"},{"name":"Rest","duration":10,"color":"green"}],"repetitions":8,"createdAt":1000},
  {"id":"r-legs","name":"Leg Day","intervals":[{"name":"Squats","duration":45,"color":"blue","type":"weights","sets":3,"restTime":60}],"repetitions":1,"createdAt":2000,"lastUsed":5000},
  {"id":"r-core","name":"Core Blast","intervals":[{"name":"Plank","duration":60,"color":"yellow","type":"repeat","sets":2}],"repetitions":3,"createdAt":3000,"lastUsed":4000}
]`

// SampleLogsJSON holds two workout logs, newest first
const SampleLogsJSON = `[
  {"id":"l-2","routineId":"r-legs","routineName":"Leg Day","completedAt":5000,"duration":185,"repetitionsCompleted":1},
  {"id":"l-1","routineId":"r-tabata","routineName":"Tabata","completedAt":1500,"duration":240,"repetitionsCompleted":8}
]`
