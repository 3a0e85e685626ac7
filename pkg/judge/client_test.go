package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shrey0196/beatcoders-dev/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init("test", "error")
	os.Exit(m.Run())
}

func TestClient_RunTests(t *testing.T) {
	// Sandbox stub: passes iff the expected output is the string "ok"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/execute", r.URL.Path)

		var req executeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		passed := req.ExpectedOutput == "ok"
		resp := executeResponse{Passed: passed}
		if !passed {
			resp.Error = "wrong answer"
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	cases := []TestCase{
		{Input: map[string]interface{}{"x": 1}, Output: "ok"},
		{Input: map[string]interface{}{"x": 2}, Output: "nope"},
		{Input: map[string]interface{}{"x": 3}, Output: "ok"},
	}

	results := client.RunTests(context.Background(), "print('hi')", cases)
	require.Len(t, results, 3)

	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Equal(t, "wrong answer", results[1].Error)
	assert.True(t, results[2].Passed)
}

func TestClient_RunTests_SandboxErrorDoesNotAbort(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(executeResponse{Passed: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	cases := []TestCase{
		{Input: map[string]interface{}{"x": 1}, Output: 1},
		{Input: map[string]interface{}{"x": 2}, Output: 2},
	}

	results := client.RunTests(context.Background(), "code", cases)
	require.Len(t, results, 2)

	// First case failed with an error string, second still executed
	assert.False(t, results[0].Passed)
	assert.NotEmpty(t, results[0].Error)
	assert.True(t, results[1].Passed)
}

func TestClient_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	assert.NoError(t, client.HealthCheck(context.Background()))
}
