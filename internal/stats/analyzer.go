package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mstanic/liftlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

const dayFormat = "2006-01-02"

type setsSource interface {
	ListSets(ctx context.Context, from *time.Time) ([]SetRow, error)
}

// SummaryRow is one (exercise, day) group of the weekly summary.
type SummaryRow struct {
	Exercise string  `json:"exercise"`
	Day      string  `json:"day"`
	Volume   float64 `json:"volume"`
	E1RM     float64 `json:"e1rm"`
}

type PersonalRecord struct {
	Exercise string  `json:"exercise"`
	BestE1RM float64 `json:"best_e1rm"`
}

type Analyzer struct {
	repo setsSource
}

func NewAnalyzer(repo setsSource) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// Epley estimates the one rep max for a set.
func Epley(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30.0)
}

// WeeklySummary aggregates the sets of the trailing 7 day window ending at
// ref, inclusive of ref's day. Workout dates are truncated to UTC days
// before the window comparison and the grouping. Rows come back ordered by
// day ascending, then exercise name ascending. An empty window yields an
// empty slice.
func (a *Analyzer) WeeklySummary(ctx context.Context, ref time.Time) (_ []SummaryRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.weeklysummary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	refDay := toUTCDay(ref)
	windowStart := refDay.AddDate(0, 0, -6)

	setRows, err := a.repo.ListSets(ctx, &windowStart)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	type groupKey struct {
		exercise string
		day      string
	}
	groups := map[groupKey]*SummaryRow{}
	for _, row := range setRows {
		day := toUTCDay(row.Date)
		if day.Before(windowStart) {
			continue
		}

		key := groupKey{exercise: row.Exercise, day: day.Format(dayFormat)}
		group, ok := groups[key]
		if !ok {
			group = &SummaryRow{Exercise: key.exercise, Day: key.day}
			groups[key] = group
		}

		group.Volume += row.Weight * float64(row.Reps)
		if e1rm := Epley(row.Weight, row.Reps); e1rm > group.E1RM {
			group.E1RM = e1rm
		}
	}

	summary := make([]SummaryRow, 0, len(groups))
	for _, group := range groups {
		summary = append(summary, *group)
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Day != summary[j].Day {
			return summary[i].Day < summary[j].Day
		}
		return summary[i].Exercise < summary[j].Exercise
	})

	return summary, nil
}

// PersonalRecords returns the best estimated one rep max per exercise over
// all recorded sets, ordered by best e1rm descending. Exercises tied on the
// best value keep their first appearance order.
func (a *Analyzer) PersonalRecords(ctx context.Context) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.personalrecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	setRows, err := a.repo.ListSets(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	best := map[string]float64{}
	records := make([]PersonalRecord, 0)
	for _, row := range setRows {
		e1rm := Epley(row.Weight, row.Reps)
		current, seen := best[row.Exercise]
		if !seen {
			best[row.Exercise] = e1rm
			records = append(records, PersonalRecord{Exercise: row.Exercise})
			continue
		}
		if e1rm > current {
			best[row.Exercise] = e1rm
		}
	}
	for i := range records {
		records[i].BestE1RM = best[records[i].Exercise]
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].BestE1RM > records[j].BestE1RM
	})

	return records, nil
}

func toUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
