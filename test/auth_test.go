package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestAuth_MissingApiKey() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/exercises", nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAuth_WrongApiKey() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/exercises", nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Api-Key", "wrong-key")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAuth_HealthOpenWithoutKey() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/health", nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var healthResp struct {
		Ok   bool   `json:"ok"`
		Time string `json:"time"`
	}
	require.NoError(s.T(), json.Unmarshal(respBytes, &healthResp))
	assert.True(s.T(), healthResp.Ok)

	respTime, err := time.Parse(time.RFC3339, healthResp.Time)
	require.NoError(s.T(), err)
	assert.WithinDuration(s.T(), time.Now(), respTime, time.Minute)
}

func (s *IntegrationTestSuite) TestAuth_UnknownPath() {
	ctx := context.Background()

	resp := s.doGet(ctx, fmt.Sprintf("/nonexistent-%d", time.Now().UnixNano()), nil)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}
