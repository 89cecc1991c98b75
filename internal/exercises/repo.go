package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise already exists")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns all known exercises, ordered by name ascending.
func (r *Repo) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, body_part FROM exercise ORDER BY name ASC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	exercises, err := rows2exercises(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2exercises: %w", err)
	}
	return exercises, nil
}

// Add inserts a new exercise. A duplicate name yields ErrExerciseExists.
func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (name, body_part) VALUES ($1, $2) RETURNING id;`,
		exercise.Name, exercise.BodyPart,
	).Scan(&id)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("exercise.id", id))

	exercise.ID = id
	return &exercise, nil
}

// GetByName looks an exercise up by exact name match.
func (r *Repo) GetByName(ctx context.Context, name string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.getbyname")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	var e Exercise
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, body_part FROM exercise WHERE name = $1;`,
		name,
	).Scan(&e.ID, &e.Name, &e.BodyPart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindOrCreate resolves an exercise name to its id, creating the exercise
// (with no body part) when the name is not known yet. Losing an insert race
// against a concurrent creator falls back to one more lookup.
func (r *Repo) FindOrCreate(ctx context.Context, name string) (_ Resolution, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.findorcreate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	existing, err := r.GetByName(ctx, name)
	if err == nil {
		return Resolution{ID: existing.ID, Created: false}, nil
	}
	if !errors.Is(err, ErrExerciseNotFound) {
		return Resolution{}, fmt.Errorf("get exercise by name: %w", err)
	}

	created, err := r.Add(ctx, Exercise{Name: name})
	if err == nil {
		return Resolution{ID: created.ID, Created: true}, nil
	}
	if !errors.Is(err, ErrExerciseExists) {
		return Resolution{}, fmt.Errorf("add exercise: %w", err)
	}

	// someone else created it in the meantime
	existing, err = r.GetByName(ctx, name)
	if err != nil {
		return Resolution{}, fmt.Errorf("re-get exercise by name: %w", err)
	}
	return Resolution{ID: existing.ID, Created: false}, nil
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.BodyPart); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	if exercises == nil {
		exercises = make([]Exercise, 0)
	}

	return exercises, nil
}
