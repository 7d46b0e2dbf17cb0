package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:   "sqlite",
			Path:     fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
			LogLevel: "silent",
		},
		Quiz: config.QuizConfig{
			DefaultQuestionCount: 10,
			MaxQuestionCount:     20,
			EnforceSingleAttempt: true,
		},
		Retry: config.RetryConfig{MaxAttempts: 1},
	}

	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	a, err := newApp(cfg, db, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func do(t *testing.T, a *App, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func seedBank(t *testing.T, a *App, skill, difficulty string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		q := model.Question{
			QuestionID:    fmt.Sprintf("%s-%s-%02d", skill, difficulty, i),
			SkillID:       skill,
			Difficulty:    difficulty,
			QuestionText:  fmt.Sprintf("question %d", i),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: "A",
		}
		require.NoError(t, a.DB.Create(&q).Error)
	}
}

func TestAssessmentFlow(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/skills", gin.H{"name": "Go"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var skill model.Skill
	decode(t, w, &skill)
	require.NotEmpty(t, skill.Code)

	w = do(t, a, http.MethodPost, "/api/competency_map", gin.H{"Role": "Backend", "Skills": gin.H{skill.Code: 3}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, a, http.MethodPost, "/api/employee_skills_levels", gin.H{
		"Employee": "Ann",
		"email":    "Ann@Example.com",
		"Roles":    []string{"Backend"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var emp model.Employee
	decode(t, w, &emp)
	require.NotEmpty(t, emp.EmployeeID)
	assert.Equal(t, "ann@example.com", emp.Email)
	require.Len(t, emp.Skills, 1)
	assert.Equal(t, model.SkillLevel{Skill: skill.Code, Level: 3}, emp.Skills[0])

	seedBank(t, a, skill.Code, "basic", 12)

	w = do(t, a, http.MethodGet, "/api/mcq/questions?skill_id="+skill.Code+"&level=2&count=10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	assert.NotContains(t, w.Body.String(), "correct_option")
	var drawn struct {
		Questions []model.QuestionView `json:"questions"`
	}
	decode(t, w, &drawn)
	require.Len(t, drawn.Questions, 10)

	// 8/10 正确 -> 80% -> Eligible for L3
	submissions := make([]gin.H, 0, len(drawn.Questions))
	for i, q := range drawn.Questions {
		letter := "A"
		if i < 2 {
			letter = "B"
		}
		submissions = append(submissions, gin.H{
			"question_id":     q.QuestionID,
			"selected_letter": letter,
			"skill":           skill.Code,
			"level":           "2",
			"employee_id":     emp.EmployeeID,
			"employee_name":   "Ann",
		})
	}
	w = do(t, a, http.MethodPost, "/api/mcq/submit-answers", gin.H{"submissions": submissions})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var graded struct {
		Success bool   `json:"success"`
		Score   int    `json:"score"`
		Max     int    `json:"max_score"`
		Percent int    `json:"percent"`
		Status  string `json:"status"`
	}
	decode(t, w, &graded)
	assert.True(t, graded.Success)
	assert.Equal(t, 8, graded.Score)
	assert.Equal(t, 10, graded.Max)
	assert.Equal(t, 80, graded.Percent)
	assert.Equal(t, "Eligible for L3", graded.Status)

	// 未授权重测前不能再次作答
	w = do(t, a, http.MethodPost, "/api/mcq/submit-answers", gin.H{"submissions": submissions})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = do(t, a, http.MethodGet, "/api/mcq/eligibility?employee_id="+emp.EmployeeID+"&skill="+skill.Code+"&level=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"allowed":false`)

	w = do(t, a, http.MethodPost, "/api/retest-allow", gin.H{"employee_id": emp.EmployeeID, "skill": skill.Code, "level": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status_flag":"retest_1"`)

	w = do(t, a, http.MethodPost, "/api/retest-allow", gin.H{"employee_id": emp.EmployeeID, "skill": skill.Code, "level": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status_flag":"retest_2"`)

	w = do(t, a, http.MethodPost, "/api/mcq/submit-answers", gin.H{"submissions": submissions})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, a, http.MethodGet, "/api/mcq/submitted-answers?employee_id="+emp.EmployeeID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var history struct {
		Submissions []struct {
			StatusFlag string `json:"status_flag"`
			Answers    []struct {
				SubmittedLetter string `json:"submitted_letter"`
			} `json:"answers"`
		} `json:"submissions"`
	}
	decode(t, w, &history)
	require.Len(t, history.Submissions, 2)
	assert.Len(t, history.Submissions[0].Answers, 10)

	w = do(t, a, http.MethodGet, "/api/performance/employee_assessment_results/all?employee_id="+emp.EmployeeID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var logs []model.ScoreLog
	decode(t, w, &logs)
	assert.Len(t, logs, 2)

	w = do(t, a, http.MethodGet, "/api/performance/employee/"+emp.EmployeeID+"/summary", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"required_level":3`)
}

func TestCompetencyMapRoundTrip(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/competency_map", gin.H{"role": "QA", "skills": gin.H{"A": 2, "B": 3}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, a, http.MethodGet, "/api/competency_map", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var maps []struct {
		Role   string         `json:"role"`
		Skills map[string]int `json:"skills"`
	}
	decode(t, w, &maps)
	require.Len(t, maps, 1)
	assert.Equal(t, "QA", maps[0].Role)
	assert.Equal(t, map[string]int{"A": 2, "B": 3}, maps[0].Skills)

	w = do(t, a, http.MethodGet, "/api/roles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["QA"]`, w.Body.String())

	w = do(t, a, http.MethodPost, "/api/competency_map", gin.H{"role": "QA", "skills": gin.H{"A": 1}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, a, http.MethodPost, "/api/competency_map", gin.H{"role": "Dev"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorResponses(t *testing.T) {
	a := newTestApp(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"unknown employee", http.MethodGet, "/api/employee/404", nil, http.StatusNotFound},
		{"unknown email", http.MethodGet, "/api/employee-by-email/nobody@example.com", nil, http.StatusNotFound},
		{"update without roles", http.MethodPut, "/api/employee/1", gin.H{"name": "x"}, http.StatusBadRequest},
		{"bad level", http.MethodGet, "/api/mcq/questions?skill_id=sk01&level=5", nil, http.StatusBadRequest},
		{"retest missing fields", http.MethodPost, "/api/retest-allow", gin.H{"skill": "sk01"}, http.StatusBadRequest},
		{"skill without name", http.MethodPost, "/api/skills", gin.H{}, http.StatusBadRequest},
		{"roles without id or name", http.MethodGet, "/api/employee/roles", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, a, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			var resp struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			decode(t, w, &resp)
			assert.Equal(t, tc.status, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestQuestions_EmptyBank(t *testing.T) {
	a := newTestApp(t)
	w := do(t, a, http.MethodGet, "/api/mcq/questions?skill_id=sk01&level=4", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"questions":[]}`, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.NotContains(t, w.Body.String(), "redis")

	w = do(t, a, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeSkillsRoutes(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/employee_skills_levels", gin.H{
		"Employee": "Ravi",
		"email":    "ravi@example.com",
		"Roles":    []string{},
		"Skills":   []gin.H{{"skill": "5S", "level": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var emp model.Employee
	decode(t, w, &emp)

	byPrefix := do(t, a, http.MethodGet, "/api/employee/skills/"+emp.EmployeeID, nil)
	require.Equal(t, http.StatusOK, byPrefix.Code, byPrefix.Body.String())
	bySuffix := do(t, a, http.MethodGet, "/api/employee/"+emp.EmployeeID+"/skills", nil)
	require.Equal(t, http.StatusOK, bySuffix.Code, bySuffix.Body.String())
	assert.JSONEq(t, byPrefix.Body.String(), bySuffix.Body.String())

	w = do(t, a, http.MethodGet, "/api/employee/404/skills", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestRetestAllow_MalformedLevel(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/retest-allow", gin.H{"employee_id": "1", "skill": "sk01", "level": "abc"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	assert.Contains(t, resp.Message, "abc")
}

func TestQuestions_CountParsing(t *testing.T) {
	a := newTestApp(t)
	seedBank(t, a, "sk01", "basic", 12)

	cases := []struct {
		count string
		want  int
	}{
		{"abc", 10},
		{"-1", 10},
		{"3", 3},
		{"999", 12},
	}
	for _, tc := range cases {
		w := do(t, a, http.MethodGet, "/api/mcq/questions?skill_id=sk01&level=2&count="+tc.count, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var drawn struct {
			Questions []model.QuestionView `json:"questions"`
		}
		decode(t, w, &drawn)
		assert.Len(t, drawn.Questions, tc.want, "count=%s", tc.count)
	}
}

func TestClose_StopsBackgroundTasks(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.ctx.Err())
	a.Close(context.Background())
	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
}
