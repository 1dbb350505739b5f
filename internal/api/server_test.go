package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tasklit/internal/interpreter"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/scorer"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/storage"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "tasklit.json"))
	require.NoError(t, store.Init())

	now := time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)
	interp := interpreter.New(scorer.New(store, scorer.WithSeed(1), scorer.WithMaxEpochs(20)),
		interpreter.WithClock(func() time.Time { return now }),
		interpreter.WithRand(rand.New(rand.NewSource(1))),
	)
	return New(session.New(interp, store, 50)).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func postCommand(t *testing.T, h http.Handler, text string) session.Result {
	t.Helper()
	body, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)
	rr := do(t, h, http.MethodPost, "/api/v1/commands", string(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res session.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

func TestAPI_Command_Create(t *testing.T) {
	h := testServer(t)

	res := postCommand(t, h, "Create an urgent meeting with the marketing team tomorrow")
	assert.Equal(t, models.ActionCreate, res.Command.Action)
	require.NotNil(t, res.Command.Task)
	assert.Equal(t, models.PriorityHigh, res.Command.Task.Priority)
	assert.Equal(t, "Create Meeting Marketing Team", res.Command.Task.Content)

	rr := do(t, h, http.MethodGet, "/api/v1/tasks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Tasks []models.Task `json:"tasks"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, res.Command.Task.ID, list.Tasks[0].ID)
}

func TestAPI_Command_BadRequests(t *testing.T) {
	h := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty text", body: `{"text": "   "}`},
		{name: "missing text", body: `{}`},
		{name: "invalid json", body: `{"text":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/v1/commands", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "error")
		})
	}
}

func TestAPI_Command_ListAndDelete(t *testing.T) {
	h := testServer(t)
	created := postCommand(t, h, `create "Pay rent" task`)

	list := postCommand(t, h, "show all")
	assert.Equal(t, "Displaying all tasks.", list.Command.Message)
	assert.Contains(t, list.Output, "Pay Rent")

	deleted := postCommand(t, h, "delete "+created.Command.Task.ID)
	assert.Equal(t, "Deleted task: Pay Rent", deleted.Command.Message)

	missing := postCommand(t, h, "delete "+created.Command.Task.ID)
	assert.Nil(t, missing.Command.Task)
	assert.Equal(t, "Task "+created.Command.Task.ID+" not found.", missing.Command.Message)
}

func TestAPI_Canvas(t *testing.T) {
	h := testServer(t)
	postCommand(t, h, "write the report, depends on budget review")

	rr := do(t, h, http.MethodGet, "/api/v1/canvas", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rr.Body.String(), "TASK CANVAS")
	assert.NotContains(t, rr.Body.String(), "DEPENDENCIES")

	rr = do(t, h, http.MethodGet, "/api/v1/canvas?advanced=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Depends on: budget review")

	rr = do(t, h, http.MethodGet, "/api/v1/canvas?advanced=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_CompleteTask(t *testing.T) {
	h := testServer(t)
	created := postCommand(t, h, `create "Pay rent" task`)

	rr := do(t, h, http.MethodPost, "/api/v1/tasks/"+created.Command.Task.ID+"/done", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.Equal(t, models.StatusDone, task.Status)

	rr = do(t, h, http.MethodPost, "/api/v1/tasks/ffffffffffffffffffffffff/done", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_StatsAndRetrain(t *testing.T) {
	h := testServer(t)

	rr := do(t, h, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stats models.TrainingStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, len(scorer.DefaultSamples()), stats.SamplesCount)
	assert.GreaterOrEqual(t, stats.AverageAccuracy, 0.0)
	assert.LessOrEqual(t, stats.AverageAccuracy, 1.0)

	rr = do(t, h, http.MethodPost, "/api/v1/retrain", `{"epochs": 5}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/retrain", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/retrain", `{"epochs": -1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_CORSAndHealth(t *testing.T) {
	h := testServer(t)

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/commands", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
