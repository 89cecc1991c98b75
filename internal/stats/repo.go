package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mstanic/liftlog/internal/telemetry/tracing"
)

// SetRow is one recorded set joined with its workout date and exercise name,
// the raw material for the aggregations.
type SetRow struct {
	Exercise string
	Date     time.Time
	Weight   float64
	Reps     int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListSets returns set rows joined with workout and exercise, ordered by
// insertion. A non-nil from narrows the result to workouts dated at or
// after it.
func (r *Repo) ListSets(ctx context.Context, from *time.Time) (_ []SetRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.listsets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows pgx.Rows
	if from != nil {
		rows, err = r.db.Query(
			ctx,
			`SELECT e.name, w.date, s.weight, s.reps
				FROM workout_set s
				JOIN workout w ON w.id = s.workout_id
				JOIN exercise e ON e.id = s.exercise_id
			WHERE w.date >= $1
			ORDER BY s.id ASC;`,
			*from,
		)
	} else {
		rows, err = r.db.Query(
			ctx,
			`SELECT e.name, w.date, s.weight, s.reps
				FROM workout_set s
				JOIN workout w ON w.id = s.workout_id
				JOIN exercise e ON e.id = s.exercise_id
			ORDER BY s.id ASC;`,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	setRows := make([]SetRow, 0)
	for rows.Next() {
		var row SetRow
		if err := rows.Scan(&row.Exercise, &row.Date, &row.Weight, &row.Reps); err != nil {
			return nil, err
		}
		setRows = append(setRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return setRows, nil
}
