package dailylogs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mstanic/liftlog/internal/telemetry/tracing"
)

var ErrLogNotFound = errors.New("daily log not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// UpsertBodyWeight inserts the log for its date, or replaces the stored
// weight when the date already has a row. Single statement, so concurrent
// upserts for the same date cannot race into two rows.
func (r *Repo) UpsertBodyWeight(ctx context.Context, log BodyWeightLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.upsertbodyweight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("log.date", log.Date))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO body_weight_log (date, weight) VALUES ($1, $2)
			ON CONFLICT (date) DO UPDATE SET weight = EXCLUDED.weight;`,
		log.Date, log.Weight,
	)
	return err
}

// UpsertNutrition inserts or replaces the nutrition row for its date. The
// replace overwrites all four nutrient fields at once, absent fields become
// null, there is no field level merge.
func (r *Repo) UpsertNutrition(ctx context.Context, log NutritionLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.upsertnutrition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("log.date", log.Date))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO nutrition_log (date, calories, protein, carbs, fat)
			VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE SET
			calories = EXCLUDED.calories,
			protein = EXCLUDED.protein,
			carbs = EXCLUDED.carbs,
			fat = EXCLUDED.fat;`,
		log.Date, log.Calories, log.Protein, log.Carbs, log.Fat,
	)
	return err
}

func (r *Repo) GetBodyWeight(ctx context.Context, date string) (_ *BodyWeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.getbodyweight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var log BodyWeightLog
	err = r.db.QueryRow(
		ctx,
		`SELECT date, weight FROM body_weight_log WHERE date = $1;`,
		date,
	).Scan(&log.Date, &log.Weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *Repo) GetNutrition(ctx context.Context, date string) (_ *NutritionLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.getnutrition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var log NutritionLog
	err = r.db.QueryRow(
		ctx,
		`SELECT date, calories, protein, carbs, fat FROM nutrition_log WHERE date = $1;`,
		date,
	).Scan(&log.Date, &log.Calories, &log.Protein, &log.Carbs, &log.Fat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}
