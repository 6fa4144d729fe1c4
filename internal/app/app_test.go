package app

import (
	"bytes"
	"career_assess_backend/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bank = `question,option_a,option_b,option_c,option_d,correct_option,level,domain,skills,skill
What does HTML stand for?,Hyper Trainer,HyperText Markup Language,Hyper Marketing,HyperTool,B,Beginner,webdev,webdev html,html
Which keyword defines a function in Python?,func,function,def,lambda,C,Beginner,python,python programming,syntax
Which HTTP method is idempotent?,POST,PUT,PATCH,CONNECT,B,Beginner,webdev,webdev http,http
`

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tech.csv"), []byte(bank), 0644))

	return &config.Config{
		Server:  config.ServerConfig{Port: "0", Mode: "test"},
		Storage: config.StorageConfig{Type: "local", LocalPath: filepath.Join(dir, "reports")},
		Assessment: config.AssessmentConfig{
			DefaultTimeLimit: 30,
			MaxQuestionCount: 50,
		},
		QuestionSource: config.QuestionSourceConfig{
			Type:           "file",
			BankDir:        dir,
			Files:          map[string]string{"2": "tech.csv"},
			TimeoutSeconds: 5,
		},
		Persistence: config.PersistenceConfig{Workers: 1, QueueSize: 16, TimeoutSeconds: 1},
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestAppServesAssessmentFlow(t *testing.T) {
	cfg := testConfig(t)
	a := NewApp(cfg)
	defer a.Close(context.Background())

	code, env := call(t, a.Router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, a.Router, http.MethodPost, "/api/test/initialize",
		`{"testType":"technical","level":"beginner","questionCount":2,"domain":"webdev"}`)
	require.Equal(t, http.StatusOK, code, env.Message)

	var init struct {
		SessionID      string `json:"sessionId"`
		TotalQuestions int    `json:"totalQuestions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &init))
	assert.Equal(t, 2, init.TotalQuestions)

	for n := 1; n <= init.TotalQuestions; n++ {
		body := fmt.Sprintf(`{"sessionId":%q,"questionNumber":%d,"answer":"B"}`, init.SessionID, n)
		code, env = call(t, a.Router, http.MethodPost, "/api/test/answer", body)
		require.Equal(t, http.StatusOK, code, env.Message)
	}

	code, env = call(t, a.Router, http.MethodGet, "/api/test/results/"+init.SessionID, "")
	require.Equal(t, http.StatusOK, code)

	var results struct {
		TestType string `json:"testType"`
		Domain   string `json:"domain"`
		Results  struct {
			Score          int `json:"score"`
			TotalQuestions int `json:"totalQuestions"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Equal(t, "technical", results.TestType)
	assert.Equal(t, "webdev", results.Domain)
	assert.Equal(t, 100, results.Results.Score)
	assert.Equal(t, 2, results.Results.TotalQuestions)

	code, _ = call(t, a.Router, http.MethodGet, "/api/test/status/"+init.SessionID, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAppUnknownBankIsSourceFailure(t *testing.T) {
	cfg := testConfig(t)
	a := NewApp(cfg)
	defer a.Close(context.Background())

	code, _ := call(t, a.Router, http.MethodPost, "/api/test/initialize",
		`{"testType":"cognitive","level":"beginner","questionCount":2}`)
	assert.Equal(t, http.StatusBadGateway, code)
}
