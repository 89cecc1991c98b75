package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mstanic/liftlog/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) recordSetRequest(ctx context.Context, workoutID int, exercise string, weight float64, reps int) {
	setReq := fmt.Sprintf(
		`{"workout_id":%d,"exercise":"%s","weight":%f,"reps":%d}`,
		workoutID, exercise, weight, reps,
	)
	resp, _ := s.doPostJSON(ctx, "/sets", setReq)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestStats_WeeklySummary() {
	ctx := context.Background()
	s.deleteAllRows()

	dayFmt := "2006-01-02"
	today := time.Now().UTC().Format(dayFmt)
	eightDaysAgo := time.Now().UTC().AddDate(0, 0, -8).Format(dayFmt)

	recentWorkout := s.newWorkoutRequest(ctx, fmt.Sprintf(`{"date":"%s"}`, today))
	oldWorkout := s.newWorkoutRequest(ctx, fmt.Sprintf(`{"date":"%s"}`, eightDaysAgo))

	s.recordSetRequest(ctx, recentWorkout, "squat", 100, 5)
	s.recordSetRequest(ctx, recentWorkout, "squat", 110, 3)
	// outside the 7 day window, must not show up
	s.recordSetRequest(ctx, oldWorkout, "squat", 200, 5)

	var summary []stats.SummaryRow
	resp := s.doGet(ctx, "/summary/week", &summary)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	require.Len(s.T(), summary, 1)
	assert.Equal(s.T(), "squat", summary[0].Exercise)
	assert.Equal(s.T(), today, summary[0].Day)
	assert.InDelta(s.T(), 830, summary[0].Volume, 0.001)
	assert.InDelta(s.T(), 121, summary[0].E1RM, 0.001)
}

func (s *IntegrationTestSuite) TestStats_WeeklySummary_Empty() {
	ctx := context.Background()
	s.deleteAllRows()

	var summary []stats.SummaryRow
	resp := s.doGet(ctx, "/summary/week", &summary)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Empty(s.T(), summary)
}

func (s *IntegrationTestSuite) TestStats_PersonalRecords() {
	ctx := context.Background()
	s.deleteAllRows()

	dayFmt := "2006-01-02"
	today := time.Now().UTC().Format(dayFmt)
	monthAgo := time.Now().UTC().AddDate(0, -1, 0).Format(dayFmt)

	recentWorkout := s.newWorkoutRequest(ctx, fmt.Sprintf(`{"date":"%s"}`, today))
	oldWorkout := s.newWorkoutRequest(ctx, fmt.Sprintf(`{"date":"%s"}`, monthAgo))

	// prs cover all time, not just the weekly window
	s.recordSetRequest(ctx, oldWorkout, "deadlift", 180, 1)
	s.recordSetRequest(ctx, recentWorkout, "deadlift", 150, 3)
	s.recordSetRequest(ctx, recentWorkout, "squat", 120, 5)

	var records []stats.PersonalRecord
	resp := s.doGet(ctx, "/summary/prs", &records)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	require.Len(s.T(), records, 2)
	assert.Equal(s.T(), "deadlift", records[0].Exercise)
	assert.InDelta(s.T(), 186, records[0].BestE1RM, 0.001)
	assert.Equal(s.T(), "squat", records[1].Exercise)
	assert.InDelta(s.T(), 140, records[1].BestE1RM, 0.001)
}
