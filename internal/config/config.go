package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Session   SessionConfig
	Redis     RedisConfig
	Quiz      QuizConfig
	Log       LogConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool   `mapstructure:"-"`
	File         string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig selects a gorm dialect. Driver is one of mysql, postgres, sqlite;
// Path is only used by sqlite.
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool `mapstructure:"parse_time"`
	Path      string
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_minutes"`
}

type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	MaxAge     time.Duration `mapstructure:"max_age_seconds"`
	Secure     bool          `mapstructure:"secure"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a redis server is configured. Without one, sessions live in memory.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// QuizConfig locates the question bank. Source is "local" (Path is a file) or
// "minio" (Path is an object key in MinioBucket).
type QuizConfig struct {
	Source         string `mapstructure:"source"`
	Path           string `mapstructure:"path"`
	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessID  string `mapstructure:"minio_access_key"`
	MinioSecret    string `mapstructure:"minio_secret_key"`
	MinioBucket    string `mapstructure:"minio_bucket"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`
	SampleSize     int    `mapstructure:"sample_size"`
	MaxSubmitted   int    `mapstructure:"max_submitted"`
	ImprintContact string `mapstructure:"imprint_contact"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "production.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.expire_minutes", 15)

	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.max_age_seconds", 3600)

	v.SetDefault("redis.port", 6379)

	v.SetDefault("quiz.source", "local")
	v.SetDefault("quiz.path", "questions.json")
	v.SetDefault("quiz.sample_size", 10)
	v.SetDefault("quiz.max_submitted", 100)

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.level", "info")

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from path. A missing file is not an error:
// defaults and environment variables still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CALIBRATION")
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")
	v.BindEnv("database.path", "DATABASE_PATH")

	// JWT / session
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("session.secure", "SESSION_SECURE")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Question bank
	v.BindEnv("quiz.source", "QUESTIONS_SOURCE")
	v.BindEnv("quiz.path", "QUESTIONS_PATH")
	v.BindEnv("quiz.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("quiz.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("quiz.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("quiz.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.File = v.ConfigFileUsed()
	if cfg.File == "" {
		cfg.File = filepath.Join(path, "config.yaml")
	}
	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Minute
	cfg.Session.MaxAge = cfg.Session.MaxAge * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Server.Mode)
	}

	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Quiz.Source {
	case "local", "minio":
	default:
		return fmt.Errorf("unsupported question source %q", c.Quiz.Source)
	}
	if c.Quiz.SampleSize <= 0 {
		return fmt.Errorf("quiz.sample_size must be positive")
	}
	return nil
}
