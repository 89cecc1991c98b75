package test

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestBodyWeight_Upsert() {
	ctx := context.Background()
	s.deleteAllRows()

	resp, respBytes := s.doPostJSON(ctx, "/bodyweight", `{"date":"2024-11-02","weight":82.4}`)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), `{"ok":true}`, string(respBytes))

	// second write for the same date replaces the weight
	resp, _ = s.doPostJSON(ctx, "/bodyweight", `{"date":"2024-11-02","weight":81.9}`)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	assert.Equal(s.T(), 1, s.countRows("body_weight_log"))

	var weight float64
	require.NoError(s.T(), s.DB.QueryRow(
		"SELECT weight FROM body_weight_log WHERE date = $1", "2024-11-02",
	).Scan(&weight))
	assert.Equal(s.T(), 81.9, weight)
}

func (s *IntegrationTestSuite) TestBodyWeight_Invalid() {
	ctx := context.Background()
	s.deleteAllRows()

	resp, _ := s.doPostJSON(ctx, "/bodyweight", `{"weight":82.4}`)
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.doPostJSON(ctx, "/bodyweight", `{"date":"2024-11-02"}`)
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)

	assert.Equal(s.T(), 0, s.countRows("body_weight_log"))
}

func (s *IntegrationTestSuite) TestNutrition_UpsertOverwritesAllFields() {
	ctx := context.Background()
	s.deleteAllRows()

	resp, _ := s.doPostJSON(ctx, "/nutrition", `{"date":"2024-11-02","calories":2800,"protein":160.5,"fat":80}`)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	// partial payload still replaces the whole record, absent fields go null
	resp, _ = s.doPostJSON(ctx, "/nutrition", `{"date":"2024-11-02","calories":2500}`)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	assert.Equal(s.T(), 1, s.countRows("nutrition_log"))

	var (
		calories sql.NullInt64
		protein  sql.NullFloat64
		carbs    sql.NullFloat64
		fat      sql.NullFloat64
	)
	require.NoError(s.T(), s.DB.QueryRow(
		"SELECT calories, protein, carbs, fat FROM nutrition_log WHERE date = $1", "2024-11-02",
	).Scan(&calories, &protein, &carbs, &fat))

	require.True(s.T(), calories.Valid)
	assert.Equal(s.T(), int64(2500), calories.Int64)
	assert.False(s.T(), protein.Valid)
	assert.False(s.T(), carbs.Valid)
	assert.False(s.T(), fat.Valid)
}
