package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Gemini GeminiConfig
	Audit  AuditConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the client ledger.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// GeminiConfig holds settings for the Gemini inference service client.
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// AuditConfig holds settings for the extraction pipeline.
type AuditConfig struct {
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	MaxPolls      int           `mapstructure:"max_polls"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	ThrottleDelay time.Duration `mapstructure:"throttle_delay"`
	Instruction   string        `mapstructure:"instruction"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
}

// S3Config holds settings for the optional report archive. An empty bucket
// disables archiving and reports are returned inline instead.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the REDLINE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REDLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "redline")
	v.SetDefault("db.password", "redline_secret")
	v.SetDefault("db.name", "redline_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.timeout_secs", 120)

	// Audit pipeline defaults
	v.SetDefault("audit.poll_interval", "1s")
	v.SetDefault("audit.max_polls", 300)
	v.SetDefault("audit.max_attempts", 3)
	v.SetDefault("audit.throttle_delay", "5s")
	v.SetDefault("audit.instruction", "")
	v.SetDefault("audit.max_file_size_mb", 25)

	// S3 defaults (archiving disabled unless a bucket is set)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "REDLINE_SERVER_PORT",
		"server.read_timeout":    "REDLINE_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "REDLINE_SERVER_WRITE_TIMEOUT",
		"server.environment":     "REDLINE_SERVER_ENVIRONMENT",
		"db.host":                "REDLINE_DB_HOST",
		"db.port":                "REDLINE_DB_PORT",
		"db.user":                "REDLINE_DB_USER",
		"db.password":            "REDLINE_DB_PASSWORD",
		"db.name":                "REDLINE_DB_NAME",
		"db.sslmode":             "REDLINE_DB_SSLMODE",
		"db.max_open":            "REDLINE_DB_MAX_OPEN",
		"db.max_idle":            "REDLINE_DB_MAX_IDLE",
		"gemini.api_key":         "REDLINE_GEMINI_API_KEY",
		"gemini.model":           "REDLINE_GEMINI_MODEL",
		"gemini.base_url":        "REDLINE_GEMINI_BASE_URL",
		"gemini.timeout_secs":    "REDLINE_GEMINI_TIMEOUT_SECS",
		"audit.poll_interval":    "REDLINE_AUDIT_POLL_INTERVAL",
		"audit.max_polls":        "REDLINE_AUDIT_MAX_POLLS",
		"audit.max_attempts":     "REDLINE_AUDIT_MAX_ATTEMPTS",
		"audit.throttle_delay":   "REDLINE_AUDIT_THROTTLE_DELAY",
		"audit.instruction":      "REDLINE_AUDIT_INSTRUCTION",
		"audit.max_file_size_mb": "REDLINE_AUDIT_MAX_FILE_SIZE_MB",
		"s3.region":              "REDLINE_S3_REGION",
		"s3.bucket":              "REDLINE_S3_BUCKET",
		"s3.endpoint":            "REDLINE_S3_ENDPOINT",
		"s3.access_key":          "REDLINE_S3_ACCESS_KEY",
		"s3.secret_key":          "REDLINE_S3_SECRET_KEY",
		"s3.presign_expiry":      "REDLINE_S3_PRESIGN_EXPIRY",
		"log.level":              "REDLINE_LOG_LEVEL",
		"log.format":             "REDLINE_LOG_FORMAT",
		"cors.allowed_origins":   "REDLINE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if REDLINE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REDLINE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Gemini = GeminiConfig{
		APIKey:      v.GetString("gemini.api_key"),
		Model:       v.GetString("gemini.model"),
		BaseURL:     v.GetString("gemini.base_url"),
		TimeoutSecs: v.GetInt("gemini.timeout_secs"),
	}
	cfg.Audit = AuditConfig{
		PollInterval:  v.GetDuration("audit.poll_interval"),
		MaxPolls:      v.GetInt("audit.max_polls"),
		MaxAttempts:   v.GetInt("audit.max_attempts"),
		ThrottleDelay: v.GetDuration("audit.throttle_delay"),
		Instruction:   v.GetString("audit.instruction"),
		MaxFileSizeMB: v.GetInt64("audit.max_file_size_mb"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
