package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single outbound call, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-brief/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the number of candidates requested per query (default 8).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Email is sent as the OpenAlex mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
}

// SummaryProvider identifies the text-generation service.
type SummaryProvider string

const (
	// ProviderOpenAI is any OpenAI-compatible chat completions API (Groq by default).
	ProviderOpenAI SummaryProvider = "openai"
	// ProviderGemini is the Google Gen AI API.
	ProviderGemini SummaryProvider = "gemini"
)

// SummaryConfig holds settings for the summarize stage.
type SummaryConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the text-generation backend: openai or gemini.
	Provider SummaryProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier; empty selects the provider default.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL overrides the OpenAI-compatible API base URL.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// APIKey is the credential for the text-generation API.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// Concurrency bounds how many papers are enriched at once (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// CacheBackend identifies the summary cache implementation.
type CacheBackend string

const (
	// CacheNone disables the summary cache.
	CacheNone CacheBackend = "none"
	// CacheSQLite stores summaries in a local SQLite file.
	CacheSQLite CacheBackend = "sqlite"
	// CacheRedis stores summaries in a Redis server.
	CacheRedis CacheBackend = "redis"
)

// CacheConfig holds settings for the optional summary cache.
type CacheConfig struct {
	// Backend selects none, sqlite, or redis.
	Backend CacheBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path" mapstructure:"sqlite_path"`

	// RedisAddr is the host:port of the redis backend (default "localhost:6379").
	RedisAddr string `json:"redis_addr" yaml:"redis_addr" mapstructure:"redis_addr"`

	// RedisPassword authenticates to the redis backend.
	RedisPassword string `json:"-" yaml:"-" mapstructure:"redis_password"`

	// RedisDB selects the redis logical database.
	RedisDB int `json:"redis_db" yaml:"redis_db" mapstructure:"redis_db"`

	// TTL is how long a cached summary stays valid (default 7 days).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Mode is the gin mode: release, debug, or test.
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json (production encoder) or console (development encoder).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for one process.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Summary SummaryConfig `json:"summary" yaml:"summary" mapstructure:"summary"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
