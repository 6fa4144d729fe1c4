package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "none", cfg.Storage.Type)
	assert.Equal(t, "file", cfg.QuestionSource.Type)
	assert.Equal(t, "technical_skills.csv", cfg.QuestionSource.Files["2"])
	assert.Equal(t, 30*time.Second, cfg.QuestionSource.Timeout())
	assert.Equal(t, time.Hour, cfg.QuestionSource.Cooldown())
	assert.Equal(t, 30, cfg.Assessment.DefaultTimeLimit)
	assert.Equal(t, 50, cfg.Assessment.MaxQuestionCount)
	assert.Equal(t, time.Duration(0), cfg.Assessment.SessionTTL())
	assert.Equal(t, 5*time.Minute, cfg.Assessment.SweepInterval())
	assert.Equal(t, 10*time.Second, cfg.Persistence.Timeout())
	assert.Empty(t, cfg.ConfigPath)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
  mode: release
assessment:
  default_time_limit: 45
  max_question_count: 20
  session_ttl_minutes: 120
question_source:
  type: command
  command: python3
  args: ["generate.py"]
  timeout_seconds: 5
cors:
  allowed_origins:
    - http://example.test
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 45, cfg.Assessment.DefaultTimeLimit)
	assert.Equal(t, 20, cfg.Assessment.MaxQuestionCount)
	assert.Equal(t, 2*time.Hour, cfg.Assessment.SessionTTL())
	assert.Equal(t, "python3", cfg.QuestionSource.Command)
	assert.Equal(t, []string{"generate.py"}, cfg.QuestionSource.Args)
	assert.Equal(t, 5*time.Second, cfg.QuestionSource.Timeout())
	assert.Equal(t, []string{"http://example.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \"9000\"\n")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("QUESTION_BANK_DIR", "/srv/banks")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "/srv/banks", cfg.QuestionSource.BankDir)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := writeConfig(t, "question_source:\n  type: command\n")
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "question_source.command")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Assessment:     AssessmentConfig{DefaultTimeLimit: 30, MaxQuestionCount: 50},
			QuestionSource: QuestionSourceConfig{Type: "file", TimeoutSeconds: 30},
			Persistence:    PersistenceConfig{Workers: 1, QueueSize: 1},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	cases := map[string]func(c *Config){
		"unknown source type": func(c *Config) { c.QuestionSource.Type = "ftp" },
		"unknown driver": func(c *Config) {
			c.Database.Enabled = true
			c.Database.Driver = "sqlite"
		},
		"zero time limit":   func(c *Config) { c.Assessment.DefaultTimeLimit = 0 },
		"zero max count":    func(c *Config) { c.Assessment.MaxQuestionCount = 0 },
		"negative ttl":      func(c *Config) { c.Assessment.SessionTTLMinutes = -1 },
		"zero timeout":      func(c *Config) { c.QuestionSource.TimeoutSeconds = 0 },
		"zero workers":      func(c *Config) { c.Persistence.Workers = 0 },
		"zero queue":        func(c *Config) { c.Persistence.QueueSize = 0 },
		"command no binary": func(c *Config) { c.QuestionSource.Type = "command" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadConfigRejectsNonPositiveTimeLimit(t *testing.T) {
	dir := writeConfig(t, "assessment:\n  default_time_limit: -5\n")
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "assessment.default_time_limit")
}
