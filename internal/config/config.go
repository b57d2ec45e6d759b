package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AnalyzerConfig holds classification engine settings. The remote model
// path is optional: with no API key configured, only the local keyword
// classifier runs.
type AnalyzerConfig struct {
	APIKey        string        `yaml:"api_key"        env:"ANALYZER_API_KEY"`
	Model         string        `yaml:"model"          env:"ANALYZER_MODEL"          env-default:"claude-3-5-haiku-latest"`
	Timeout       time.Duration `yaml:"timeout"        env:"ANALYZER_TIMEOUT"        env-default:"15s"`
	MaxRetries    int           `yaml:"max_retries"    env:"ANALYZER_MAX_RETRIES"    env-default:"2"`
	RetryBaseWait time.Duration `yaml:"retry_base_wait" env:"ANALYZER_RETRY_BASE_WAIT" env-default:"500ms"`
}

// RemoteEnabled reports whether the remote model path is configured.
func (c AnalyzerConfig) RemoteEnabled() bool { return c.APIKey != "" }

// DispatchConfig holds dispatch queue and consumer settings.
type DispatchConfig struct {
	// Mode selects the intake strategy: "sync", "async", or "" to pick
	// async when a queue backend is configured and sync otherwise.
	Mode         string        `yaml:"mode"          env:"DISPATCH_MODE"          env-default:""`
	BatchSize    int           `yaml:"batch_size"    env:"DISPATCH_BATCH_SIZE"    env-default:"10"`
	PollInterval time.Duration `yaml:"poll_interval" env:"DISPATCH_POLL_INTERVAL" env-default:"1s"`
	// MaxAttempts bounds redelivery; a message failing this many times
	// is dead-lettered instead of retried forever.
	MaxAttempts int `yaml:"max_attempts" env:"DISPATCH_MAX_ATTEMPTS" env-default:"5"`
	// LeaseTimeout is how long a leased message may stay unacknowledged
	// before it becomes eligible for redelivery. Keep it comfortably
	// above expected classification latency.
	LeaseTimeout time.Duration `yaml:"lease_timeout" env:"DISPATCH_LEASE_TIMEOUT" env-default:"1m"`
	Workers      int           `yaml:"workers"       env:"DISPATCH_WORKERS"       env-default:"1"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-User-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
