package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mstanic/liftlog/internal/exercises"
	"github.com/mstanic/liftlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

var (
	ErrInvalidReps       = errors.New("reps must be a positive integer")
	ErrEmptyExerciseName = errors.New("exercise name empty")
)

type setsRepo interface {
	AddWorkout(ctx context.Context, workout Workout) (*Workout, error)
	AddSet(ctx context.Context, set Set) (*Set, error)
}

type exercisesResolver interface {
	FindOrCreate(ctx context.Context, name string) (exercises.Resolution, error)
}

type RecordSetParams struct {
	WorkoutID int
	Exercise  string
	Weight    float64
	Reps      int
	RPE       *float64
}

type Service struct {
	repo      setsRepo
	exercises exercisesResolver
}

func NewService(repo setsRepo, exercisesResolver exercisesResolver) *Service {
	return &Service{
		repo:      repo,
		exercises: exercisesResolver,
	}
}

// NewWorkout creates a workout. A zero date means "now".
func (s *Service) NewWorkout(ctx context.Context, date time.Time, notes *string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.new")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if date.IsZero() {
		date = time.Now()
	}

	workout, err := s.repo.AddWorkout(ctx, Workout{Date: date, Notes: notes})
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	return workout.ID, nil
}

// RecordSet validates the input, resolves the exercise name (creating the
// exercise when unknown) and inserts the set. Validation runs before the
// exercise resolution, so invalid input leaves no rows behind. An exercise
// auto-created for a set that then fails to insert is kept: it is cheap and
// idempotent to re-resolve on the next attempt.
func (s *Service) RecordSet(ctx context.Context, params RecordSetParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.recordset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set.workoutId", params.WorkoutID))
	span.SetAttributes(attribute.String("set.exercise", params.Exercise))

	if params.Reps <= 0 {
		return 0, ErrInvalidReps
	}
	if params.Exercise == "" {
		return 0, ErrEmptyExerciseName
	}

	resolution, err := s.exercises.FindOrCreate(ctx, params.Exercise)
	if err != nil {
		return 0, fmt.Errorf("resolve exercise %q: %w", params.Exercise, err)
	}
	if resolution.Created {
		log.Debugf("exercise %q auto-created with id %d", params.Exercise, resolution.ID)
	}

	set, err := s.repo.AddSet(ctx, Set{
		WorkoutID:  params.WorkoutID,
		ExerciseID: resolution.ID,
		Weight:     params.Weight,
		Reps:       params.Reps,
		RPE:        params.RPE,
	})
	if err != nil {
		return 0, fmt.Errorf("add set: %w", err)
	}
	return set.ID, nil
}
