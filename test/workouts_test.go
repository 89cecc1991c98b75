package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mstanic/liftlog/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) newWorkoutRequest(ctx context.Context, body string) int {
	resp, respBytes := s.doPostJSON(ctx, "/workouts", body)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var created workouts.CreatedResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &created))
	require.NotZero(s.T(), created.ID)
	return created.ID
}

func (s *IntegrationTestSuite) TestWorkouts_Create() {
	ctx := context.Background()
	s.deleteAllRows()

	workoutID := s.newWorkoutRequest(ctx, `{"date":"2024-11-02","notes":"push day"}`)

	var notes string
	require.NoError(s.T(), s.DB.QueryRow(
		"SELECT notes FROM workout WHERE id = $1", workoutID,
	).Scan(&notes))
	assert.Equal(s.T(), "push day", notes)

	// date defaults to now when omitted
	s.newWorkoutRequest(ctx, `{}`)
	assert.Equal(s.T(), 2, s.countRows("workout"))
}

func (s *IntegrationTestSuite) TestWorkouts_RecordSet_AutoCreatesExercise() {
	ctx := context.Background()
	s.deleteAllRows()

	workoutID := s.newWorkoutRequest(ctx, `{"date":"2024-11-02"}`)

	setReq := fmt.Sprintf(`{"workout_id":%d,"exercise":"incline press","weight":70,"reps":8}`, workoutID)
	resp, respBytes := s.doPostJSON(ctx, "/sets", setReq)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var created workouts.CreatedResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &created))
	assert.NotZero(s.T(), created.ID)

	assert.Equal(s.T(), 1, s.countRows("exercise"))
	assert.Equal(s.T(), 1, s.countRows("workout_set"))

	// same name again, no second exercise
	resp, _ = s.doPostJSON(ctx, "/sets", setReq)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	assert.Equal(s.T(), 1, s.countRows("exercise"))
	assert.Equal(s.T(), 2, s.countRows("workout_set"))
}

func (s *IntegrationTestSuite) TestWorkouts_RecordSet_InvalidReps() {
	ctx := context.Background()
	s.deleteAllRows()

	workoutID := s.newWorkoutRequest(ctx, `{"date":"2024-11-02"}`)

	for _, reps := range []int{0, -2} {
		setReq := fmt.Sprintf(`{"workout_id":%d,"exercise":"unseen exercise","weight":70,"reps":%d}`, workoutID, reps)
		resp, _ := s.doPostJSON(ctx, "/sets", setReq)
		assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	}

	// validation runs before exercise resolution, nothing is created
	assert.Equal(s.T(), 0, s.countRows("exercise"))
	assert.Equal(s.T(), 0, s.countRows("workout_set"))
}

func (s *IntegrationTestSuite) TestWorkouts_RecordSet_UnknownWorkout() {
	ctx := context.Background()
	s.deleteAllRows()

	resp, _ := s.doPostJSON(ctx, "/sets", `{"workout_id":987654,"exercise":"lat pulldown","weight":50,"reps":10}`)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)

	// the auto-created exercise is kept, only the set insert failed
	assert.Equal(s.T(), 1, s.countRows("exercise"))
	assert.Equal(s.T(), 0, s.countRows("workout_set"))
}
