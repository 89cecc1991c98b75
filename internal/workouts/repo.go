package workouts

import (
	"context"
	"errors"

	"github.com/mstanic/liftlog/internal/exercises"
	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddWorkout(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout (date, notes) VALUES ($1, $2) RETURNING id;`,
		workout.Date, workout.Notes,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	workout.ID = id
	return &workout, nil
}

func (r *Repo) GetWorkout(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", id))

	var w Workout
	err = r.db.QueryRow(
		ctx,
		`SELECT id, date, notes FROM workout WHERE id = $1;`,
		id,
	).Scan(&w.ID, &w.Date, &w.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return &w, nil
}

// AddSet inserts a set row. Referential integrity is enforced by the store:
// an unknown workout or exercise id surfaces as the matching not-found error.
func (r *Repo) AddSet(ctx context.Context, set Set) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set.workoutId", set.WorkoutID))
	span.SetAttributes(attribute.Int("set.exerciseId", set.ExerciseID))

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_set (workout_id, exercise_id, weight, reps, rpe)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		set.WorkoutID, set.ExerciseID, set.Weight, set.Reps, set.RPE,
	).Scan(&id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			switch pkg.ViolatedConstraintName(err) {
			case "workout_set_exercise_id_fkey":
				return nil, exercises.ErrExerciseNotFound
			default:
				return nil, ErrWorkoutNotFound
			}
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("set.id", id))

	set.ID = id
	return &set, nil
}
