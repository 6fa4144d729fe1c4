package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Storage        StorageConfig
	Tracing        TracingConfig `mapstructure:"tracing"`
	Redis          RedisConfig
	CORS           CORSConfig           `mapstructure:"cors"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Assessment     AssessmentConfig     `mapstructure:"assessment"`
	QuestionSource QuestionSourceConfig `mapstructure:"question_source"`
	Persistence    PersistenceConfig    `mapstructure:"persistence"`
	Log            LogConfig            `mapstructure:"log"`

	// 运行时标志（非配置文件）
	ConfigPath string `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port        string
	Mode        string
	WatchConfig bool `mapstructure:"watch_config"`
}

type DatabaseConfig struct {
	Enabled   bool
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool   `mapstructure:"parse_time"`
	SSLMode   string `mapstructure:"sslmode"`

	MaxOpenConns    int `mapstructure:"max_open_conns"`
	MaxIdleConns    int `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime_minutes"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SampleRatio       float64 `mapstructure:"sample_ratio"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int `mapstructure:"pool_size"`
}

// AssessmentConfig 测试会话相关的限制
type AssessmentConfig struct {
	DefaultTimeLimit     int `mapstructure:"default_time_limit"` // 分钟
	MaxQuestionCount     int `mapstructure:"max_question_count"`
	SessionTTLMinutes    int `mapstructure:"session_ttl_minutes"` // 0 表示永不过期
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

func (c AssessmentConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c AssessmentConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

type QuestionSourceConfig struct {
	Type            string            `mapstructure:"type"` // file | command
	BankDir         string            `mapstructure:"bank_dir"`
	Files           map[string]string `mapstructure:"files"` // 题型代码 -> 文件名
	Command         string            `mapstructure:"command"`
	Args            []string          `mapstructure:"args"`
	TimeoutSeconds  int               `mapstructure:"timeout_seconds"`
	CooldownMinutes int               `mapstructure:"cooldown_minutes"`
}

func (c QuestionSourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c QuestionSourceConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

type PersistenceConfig struct {
	Workers        int `mapstructure:"workers"`
	QueueSize      int `mapstructure:"queue_size"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c PersistenceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type LogConfig struct {
	Level      string `mapstructure:"level"` // 为空时按 server.mode 决定
	Filename   string `mapstructure:"filename"` // 为空时只输出到控制台
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 60)

	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("storage.type", "none")
	v.SetDefault("storage.local_path", "./reports")

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)

	v.SetDefault("assessment.default_time_limit", 30)
	v.SetDefault("assessment.max_question_count", 50)
	v.SetDefault("assessment.session_ttl_minutes", 0)
	v.SetDefault("assessment.sweep_interval_minutes", 5)

	v.SetDefault("question_source.type", "file")
	v.SetDefault("question_source.bank_dir", "./question_banks")
	v.SetDefault("question_source.files", map[string]string{
		"1": "cognitive_skills.csv",
		"2": "technical_skills.csv",
		"3": "soft_skills.csv",
	})
	v.SetDefault("question_source.timeout_seconds", 30)
	v.SetDefault("question_source.cooldown_minutes", 60)

	v.SetDefault("persistence.workers", 4)
	v.SetDefault("persistence.queue_size", 256)
	v.SetDefault("persistence.timeout_seconds", 10)

	v.SetDefault("log.filename", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
}

func LoadConfig(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CAREER_ASSESS")
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "SERVER_PORT")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")

	// Question source
	v.BindEnv("question_source.bank_dir", "QUESTION_BANK_DIR")
	v.BindEnv("question_source.command", "QUESTION_SOURCE_COMMAND")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.QuestionSource.Type {
	case "file":
	case "command":
		if c.QuestionSource.Command == "" {
			return fmt.Errorf("question_source.command is required when question_source.type is command")
		}
	default:
		return fmt.Errorf("unknown question_source.type %q", c.QuestionSource.Type)
	}

	if c.Database.Enabled && c.Database.Driver != "mysql" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	if c.Assessment.DefaultTimeLimit <= 0 {
		return fmt.Errorf("assessment.default_time_limit must be positive")
	}
	if c.Assessment.MaxQuestionCount <= 0 {
		return fmt.Errorf("assessment.max_question_count must be positive")
	}
	if c.Assessment.SessionTTLMinutes < 0 {
		return fmt.Errorf("assessment.session_ttl_minutes must not be negative")
	}
	if c.QuestionSource.TimeoutSeconds <= 0 {
		return fmt.Errorf("question_source.timeout_seconds must be positive")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0, 1]")
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if c.Persistence.Workers <= 0 || c.Persistence.QueueSize <= 0 {
		return fmt.Errorf("persistence.workers and persistence.queue_size must be positive")
	}
	return nil
}
