package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/storage"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

func testRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := storage.NewMemory()
	st := store.New(kv, nil)
	st.Load(context.Background())

	aiService := services.NewAIService(&config.Config{
		AIBaseURL:   "http://localhost:1",
		AIModel:     "gpt-3.5-turbo",
		AICharLimit: 8000,
	}, st.APIKey)

	r := gin.New()
	r.GET("/health", HealthCheck(kv))
	r.GET("/state", GetState(st))
	r.PUT("/state/active-subject", SetActiveSubject(st))
	r.PUT("/state/active-page", SetActivePage(st))
	r.GET("/subjects", ListSubjects(st))
	r.GET("/subjects/:id", GetSubject(st))
	r.POST("/subjects", CreateSubject(st, nil))
	r.PUT("/subjects/:id", UpdateSubject(st, nil))
	r.DELETE("/subjects/:id", DeleteSubject(st, nil))
	r.GET("/schedule", GetSchedule(st))
	r.GET("/schedule/meta", GetScheduleMeta())
	r.PUT("/schedule/:id", UpdateScheduleCell(st))
	r.GET("/plans", ListStudyPlans(st))
	r.POST("/plans", CreateStudyPlan(st))
	r.PUT("/plans/:id", UpdateStudyPlan(st))
	r.DELETE("/plans/:id", DeleteStudyPlan(st))
	r.GET("/chat", GetChatHistory(st))
	r.POST("/chat", PostChatMessage(st, aiService))
	r.GET("/settings", GetSettings(st))
	r.PUT("/settings/api-key", UpdateAPIKey(st))
	r.POST("/calc/evaluate", Evaluate())
	r.POST("/calc/convert-base", ConvertBase())
	r.POST("/calc/grade", Grade())

	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestHealthCheck(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["storage"])
}

func TestListSubjectsReturnsDefaults(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/subjects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, "Computer Science", first["name"])
	assert.Equal(t, "#9B87F5", first["color"])
}

func TestCreateSubjectValidation(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/subjects", gin.H{"name": "Physics"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]any)["code"])
}

func TestSubjectLifecycle(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/subjects", gin.H{
		"name":  "Physics",
		"color": "#FF0000",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := body["data"].(map[string]any)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, []any{}, created["resources"])

	w, body = doJSON(t, r, http.MethodGet, "/subjects/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Physics", body["data"].(map[string]any)["name"])

	w, body = doJSON(t, r, http.MethodPut, "/subjects/"+id, gin.H{"name": "Quantum Physics"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := body["data"].(map[string]any)
	assert.Equal(t, "Quantum Physics", updated["name"])
	assert.Equal(t, "#FF0000", updated["color"])

	w, _ = doJSON(t, r, http.MethodDelete, "/subjects/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/subjects/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])
}

func TestGetScheduleGrid(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/schedule", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"].([]any), 48)
}

func TestGetScheduleMeta(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/schedule/meta", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	days := data["days"].([]any)
	require.Len(t, days, 6)
	assert.Equal(t, "Monday", days[0])
	assert.Equal(t, "Saturday", days[5])

	periods := data["periods"].([]any)
	require.Len(t, periods, 8)
	assert.Equal(t, "8:30 - 9:30", periods[0])
	assert.Equal(t, "16:30 - 17:30", periods[7])
}

func TestUpdateScheduleCellKeepsSlot(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPut, "/schedule/schedule-10", gin.H{
		"subject": "Algorithms",
		"room":    "B204",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cell := body["data"].(map[string]any)
	assert.Equal(t, "Algorithms", cell["subject"])
	assert.Equal(t, "B204", cell["room"])
	// Cell 10 lives at day 1, period 3 regardless of the request body.
	assert.Equal(t, float64(1), cell["day"])
	assert.Equal(t, float64(3), cell["period"])
}

func TestUpdateScheduleCellNotFound(t *testing.T) {
	r, _ := testRouter(t)

	w, _ := doJSON(t, r, http.MethodPut, "/schedule/schedule-99", gin.H{"subject": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudyPlanLifecycle(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/plans", gin.H{
		"title":     "Review sorting",
		"subjectId": "1",
		"date":      "2026-09-01T10:00:00Z",
		"duration":  90,
		"priority":  "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["data"].(map[string]any)["id"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/plans", gin.H{
		"title":     "Integrals",
		"subjectId": "2",
		"date":      "2026-09-02T10:00:00Z",
		"duration":  60,
		"priority":  "low",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/plans?subject_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plans := body["data"].([]any)
	require.Len(t, plans, 1)
	assert.Equal(t, "Review sorting", plans[0].(map[string]any)["title"])

	w, body = doJSON(t, r, http.MethodPut, "/plans/"+id, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["completed"])

	w, _ = doJSON(t, r, http.MethodDelete, "/plans/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/plans/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateStudyPlanRejectsBadPriority(t *testing.T) {
	r, _ := testRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/plans", gin.H{
		"title":     "x",
		"subjectId": "1",
		"date":      "2026-09-01T10:00:00Z",
		"duration":  30,
		"priority":  "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStateSnapshotAndSelection(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	assert.Nil(t, data["activeSubjectId"])
	assert.Equal(t, "subjects", data["activePage"])
	assert.Equal(t, false, data["apiKeySet"])

	w, _ = doJSON(t, r, http.MethodPut, "/state/active-subject", gin.H{"subjectId": "1"})
	require.Equal(t, http.StatusOK, w.Code)

	// Unknown ids are ignored, the previous selection stands.
	w, _ = doJSON(t, r, http.MethodPut, "/state/active-subject", gin.H{"subjectId": "nope"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/state/active-page", gin.H{"page": "planner"})
	require.Equal(t, http.StatusOK, w.Code)

	_, body = doJSON(t, r, http.MethodGet, "/state", nil)
	data = body["data"].(map[string]any)
	assert.Equal(t, "1", data["activeSubjectId"])
	assert.Equal(t, "planner", data["activePage"])
}

func TestSettingsMaskKey(t *testing.T) {
	r, _ := testRouter(t)

	w, _ := doJSON(t, r, http.MethodPut, "/settings/api-key", gin.H{"apiKey": "  sk-abcdefghijklmnop  "})
	require.Equal(t, http.StatusOK, w.Code)

	_, body := doJSON(t, r, http.MethodGet, "/settings", nil)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["apiKeySet"])
	assert.Equal(t, "sk-a***********mnop", data["apiKey"])
}

func TestChatWithoutAPIKeyStillReplies(t *testing.T) {
	r, st := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/chat", gin.H{"content": "Help me study"})
	require.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Help me study", data["message"].(map[string]any)["content"])
	assert.Equal(t,
		"Please set your AI API key in the settings first to use the AI assistant.",
		data["reply"].(map[string]any)["content"])

	history := st.ChatHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestCalcEvaluateEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/calc/evaluate", gin.H{"a": 6, "b": 4, "op": "*"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(24), body["data"].(map[string]any)["result"])
}

func TestCalcConvertBaseEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/calc/convert-base", gin.H{
		"value": "255", "from": "dec", "to": "hex",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FF", body["data"].(map[string]any)["result"])

	w, _ = doJSON(t, r, http.MethodPost, "/calc/convert-base", gin.H{
		"value": "2", "from": "bin", "to": "dec",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalcGradeEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/calc/grade", gin.H{
		"components": []gin.H{
			{"name": "Midterm", "score": 80, "weight": 30},
			{"name": "Homework", "score": 90, "weight": 20},
			{"name": "Final", "score": 0, "weight": 40},
		},
		"pending": "Final",
		"target":  70,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.InDelta(t, 42, data["total"].(float64), 0.001)
	assert.InDelta(t, 70, data["required"].(float64), 0.001)
}

func TestScheduleCellIDsAreStable(t *testing.T) {
	r, _ := testRouter(t)

	_, body := doJSON(t, r, http.MethodGet, "/schedule", nil)
	cells := body["data"].([]any)
	for i, raw := range cells {
		cell := raw.(map[string]any)
		assert.Equal(t, fmt.Sprintf("schedule-%d", i), cell["id"])
	}
}
