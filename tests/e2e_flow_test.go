package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/server"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenPath(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker for the mongo container")
	}

	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-123"
	cfg.Cache.PlanTTL = time.Minute
	cfg.Cache.IdempotencyTTL = time.Minute

	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
	})

	token := IssueToken(t, cfg.JWT.Secret, "user-e2e")

	request := func(method, path string, body interface{}, headers ...string) (int, map[string]interface{}) {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		for i := 0; i+1 < len(headers); i += 2 {
			req.Header.Set(headers[i], headers[i+1])
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		var out map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out
	}

	// ==========================================
	// STEP 1: Store a two-week plan
	// ==========================================
	bench := map[string]string{"id": "bench", "name": "Bench Press"}
	row := map[string]string{"name": "Barbell Row"}
	dayItems := []map[string]interface{}{
		{"id": "i1", "exercise": bench, "target_sets": 2},
		{"id": "i2", "exercise": row, "target_sets": 1},
	}
	plan := map[string]interface{}{
		"name": "Upper",
		"weeks": []map[string]interface{}{
			{"id": "w1", "days": []map[string]interface{}{{"id": "w1-upper", "name": "Upper", "items": dayItems}}},
			{"id": "w2", "days": []map[string]interface{}{{"id": "w2-upper", "name": "Upper", "items": dayItems}}},
		},
	}
	code, _ := request("PUT", "/v1/me/plans/plan-1", plan)
	require.Equal(t, 200, code)

	// ==========================================
	// STEP 2: Start week 1 session via merge
	// ==========================================
	code, session := request("POST", "/v1/me/plans/plan-1/weeks/w1/days/w1-upper/session/merge", nil)
	require.Equal(t, 200, code)
	sessionID := session["id"].(string)
	require.NotEmpty(t, sessionID)
	entries := session["entries"].([]interface{})
	require.Len(t, entries, 2)

	// ==========================================
	// STEP 3: Log sets and save
	// ==========================================
	first := entries[0].(map[string]interface{})
	sets := first["sets"].([]interface{})
	sets[0].(map[string]interface{})["weight"] = 80
	sets[0].(map[string]interface{})["reps"] = 8
	sets[1].(map[string]interface{})["weight"] = 82.5
	sets[1].(map[string]interface{})["reps"] = 6
	session["date"] = "2024-03-04T10:00:00Z"

	code, _ = request("POST", "/v1/me/sessions", session)
	require.Equal(t, 201, code)

	// ==========================================
	// STEP 4: Week 2 ghosts come from week 1 history
	// ==========================================
	code, ghosts := request("GET", "/v1/me/plans/plan-1/weeks/w2/days/w2-upper/ghosts", nil)
	require.Equal(t, 200, code)
	exercises := ghosts["exercises"].([]interface{})
	require.Len(t, exercises, 2)
	benchSets := exercises[0].(map[string]interface{})["sets"].([]interface{})
	assert.Equal(t, 80.0, benchSets[0].(map[string]interface{})["weight"])
	assert.Equal(t, 82.5, benchSets[1].(map[string]interface{})["weight"])

	// Name-only lookup past the logged sets falls back to the previous set.
	code, single := request("GET", "/v1/me/plans/plan-1/weeks/w2/days/w2-upper/ghosts/resolve?exercise_name=bench%20press&set_index=2", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, true, single["exists"])
	assert.Equal(t, 82.5, single["ghost"].(map[string]interface{})["weight"])

	// ==========================================
	// STEP 5: Streak config, idempotent completion
	// ==========================================
	code, status := request("PUT", "/v1/me/streak/config", map[string]interface{}{
		"enabled":       true,
		"schedule_mode": "daily",
		"timezone":      "UTC",
	})
	require.Equal(t, 200, code)
	assert.Equal(t, true, status["scheduled_today"])

	code, status = request("POST", "/v1/me/streak/complete", nil, "X-Correlation-ID", "complete-1")
	require.Equal(t, 200, code)
	state := status["state"].(map[string]interface{})
	assert.Equal(t, 1.0, state["current_streak"])

	code, status = request("POST", "/v1/me/streak/complete", nil, "X-Correlation-ID", "complete-2")
	require.Equal(t, 200, code)
	state = status["state"].(map[string]interface{})
	assert.Equal(t, 1.0, state["current_streak"], "second workout on the same day is a no-op")

	code, status = request("GET", "/v1/me/streak", nil)
	require.Equal(t, 200, code)
	eval := status["evaluation"].(map[string]interface{})
	assert.Equal(t, true, eval["is_hit_today"])

	// ==========================================
	// STEP 6: Unknown day and bad auth
	// ==========================================
	code, _ = request("GET", "/v1/me/plans/plan-1/weeks/w9/days/nope/ghosts", nil)
	assert.Equal(t, 404, code)

	req, _ := http.NewRequest("GET", "/v1/me/streak", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
