package controller

import (
	"bytes"
	"career_assess_backend/internal/middleware"
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/repository"
	"career_assess_backend/internal/service"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	questions []model.Question
	err       error
	block     bool
}

func (f *fakeSource) LoadQuestions(ctx context.Context, _ service.QuestionRequest) ([]model.Question, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.questions, f.err
}

func sampleQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			Prompt:        fmt.Sprintf("Q%d", i+1),
			Options:       [4]string{"a", "b", "c", "d"},
			CorrectOption: "B",
		}
	}
	return qs
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(source service.QuestionSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewTestSessionService(repository.NewMemorySessionStore(), source, nil, nil, nil, service.SessionLimits{
		DefaultTimeLimit: 30,
		MaxQuestionCount: 50,
		SourceTimeout:    50 * time.Millisecond,
	})
	ctrl := NewTestSessionController(svc)

	r := gin.New()
	api := r.Group("/api/test")
	api.POST("/initialize", ctrl.Initialize)
	api.POST("/answer", ctrl.SubmitAnswer)
	byID := api.Group("", middleware.RequireSessionID())
	byID.GET("/question/:sessionId", ctrl.GetQuestion)
	byID.GET("/results/:sessionId", ctrl.GetResults)
	byID.GET("/status/:sessionId", ctrl.GetStatus)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func initSession(t *testing.T, r http.Handler, body string) service.InitializeResult {
	t.Helper()
	code, env := doJSON(t, r, http.MethodPost, "/api/test/initialize", body)
	require.Equal(t, http.StatusOK, code, env.Message)
	var res service.InitializeResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res
}

func TestInitializeAndFullFlow(t *testing.T) {
	r := newTestRouter(&fakeSource{questions: sampleQuestions(3)})

	res := initSession(t, r, `{"testType":"technical","level":"beginner","questionCount":"3"}`)
	assert.Regexp(t, `^test_\d+_[0-9a-f]{12}$`, res.SessionID)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 30, res.TimeLimit)
	assert.Equal(t, 1, res.FirstQuestion.QuestionNumber)
	assert.Equal(t, "Q1", res.FirstQuestion.Question)

	// 字母与下标两种答案形式
	answers := []string{`"B"`, `1`, `"b"`}
	for i, a := range answers {
		body := fmt.Sprintf(`{"sessionId":%q,"questionNumber":%d,"answer":%s}`, res.SessionID, i+1, a)
		code, env := doJSON(t, r, http.MethodPost, "/api/test/answer", body)
		require.Equal(t, http.StatusOK, code, env.Message)

		var sub service.SubmitAnswerResult
		require.NoError(t, json.Unmarshal(env.Data, &sub))
		assert.Equal(t, i == len(answers)-1, sub.Completed)
	}

	code, env := doJSON(t, r, http.MethodGet, "/api/test/question/"+res.SessionID, "")
	require.Equal(t, http.StatusOK, code)
	var cur service.CurrentQuestion
	require.NoError(t, json.Unmarshal(env.Data, &cur))
	assert.True(t, cur.Completed)
	assert.Nil(t, cur.Question)

	code, env = doJSON(t, r, http.MethodGet, "/api/test/results/"+res.SessionID, "")
	require.Equal(t, http.StatusOK, code)
	var results service.SessionResults
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Equal(t, model.TestTypeTechnical, results.TestType)
	assert.Equal(t, 100, results.Results.Score)
	assert.Equal(t, 3, results.Results.CorrectAnswers)

	// 结果只能读取一次
	code, env = doJSON(t, r, http.MethodGet, "/api/test/results/"+res.SessionID, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Test session not found", env.Message)
}

func TestInitializeValidation(t *testing.T) {
	r := newTestRouter(&fakeSource{questions: sampleQuestions(3)})

	cases := []struct {
		name string
		body string
	}{
		{"missing level", `{"testType":"technical","questionCount":3}`},
		{"missing count", `{"testType":"technical","level":"beginner"}`},
		{"non numeric count", `{"testType":"technical","level":"beginner","questionCount":"ten"}`},
		{"unknown type", `{"testType":"astrology","level":"beginner","questionCount":3}`},
		{"unknown level", `{"testType":"technical","level":"guru","questionCount":3}`},
		{"zero count", `{"testType":"technical","level":"beginner","questionCount":0}`},
		{"too many", `{"testType":"technical","level":"beginner","questionCount":500}`},
		{"bad json", `{"testType":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := doJSON(t, r, http.MethodPost, "/api/test/initialize", tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, http.StatusBadRequest, env.Code)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestInitializeSourceErrors(t *testing.T) {
	cases := []struct {
		name   string
		source *fakeSource
		status int
	}{
		{"empty", &fakeSource{}, http.StatusInternalServerError},
		{"failure", &fakeSource{err: errors.New("bank unreadable")}, http.StatusBadGateway},
		{"timeout", &fakeSource{block: true}, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.source)
			code, env := doJSON(t, r, http.MethodPost, "/api/test/initialize", `{"testType":"technical","level":"beginner","questionCount":3}`)
			assert.Equal(t, tc.status, code)
			assert.Equal(t, tc.status, env.Code)
			assert.Empty(t, env.Data)
		})
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	r := newTestRouter(&fakeSource{questions: sampleQuestions(2)})
	res := initSession(t, r, `{"testType":"soft-skills","level":"advanced","questionCount":2}`)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"missing answer", fmt.Sprintf(`{"sessionId":%q,"questionNumber":1}`, res.SessionID), http.StatusBadRequest},
		{"bad letter", fmt.Sprintf(`{"sessionId":%q,"questionNumber":1,"answer":"E"}`, res.SessionID), http.StatusBadRequest},
		{"bad index", fmt.Sprintf(`{"sessionId":%q,"questionNumber":1,"answer":4}`, res.SessionID), http.StatusBadRequest},
		{"out of range", fmt.Sprintf(`{"sessionId":%q,"questionNumber":3,"answer":"A"}`, res.SessionID), http.StatusBadRequest},
		{"unknown session", `{"sessionId":"test_0_000000000000","questionNumber":1,"answer":"A"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := doJSON(t, r, http.MethodPost, "/api/test/answer", tc.body)
			assert.Equal(t, tc.status, code)
		})
	}
}

func TestStatusAndUnknownSession(t *testing.T) {
	r := newTestRouter(&fakeSource{questions: sampleQuestions(2)})
	res := initSession(t, r, `{"testType":"aptitude","level":"intermediate","questionCount":2,"timeLimit":"15"}`)
	assert.Equal(t, 15, res.TimeLimit)

	code, env := doJSON(t, r, http.MethodGet, "/api/test/status/"+res.SessionID, "")
	require.Equal(t, http.StatusOK, code)
	var status service.SessionStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, res.SessionID, status.SessionID)
	assert.Equal(t, 2, status.TotalQuestions)
	assert.Equal(t, 15*60, status.TimeLimitSeconds)

	for _, path := range []string{"/api/test/question/nope", "/api/test/status/nope", "/api/test/results/nope"} {
		code, env := doJSON(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Test session not found", env.Message)
	}
}
