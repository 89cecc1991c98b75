package workouts

import "time"

type Workout struct {
	ID    int       `json:"id"`
	Date  time.Time `json:"date"`
	Notes *string   `json:"notes,omitempty"`
}

// Set is a single performed set of an exercise within a workout.
// Sets are immutable once recorded.
type Set struct {
	ID         int      `json:"id"`
	WorkoutID  int      `json:"workout_id"`
	ExerciseID int      `json:"exercise_id"`
	Weight     float64  `json:"weight"`
	Reps       int      `json:"reps"`
	RPE        *float64 `json:"rpe,omitempty"`
}
