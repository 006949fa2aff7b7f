// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-brief/internal/secrets"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// llmAPIKeyEnv is read when summary.api_key is not configured.
const llmAPIKeyEnv = "LLM_API_KEY"

// setDefaults registers every configuration key so that environment
// variables resolve through AutomaticEnv even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.max_results", 8)
	v.SetDefault("search.timeout", 15*time.Second)
	v.SetDefault("search.email", "")
	v.SetDefault("search.user_agent", "")

	v.SetDefault("summary.provider", string(types.ProviderOpenAI))
	v.SetDefault("summary.model", "")
	v.SetDefault("summary.base_url", "")
	v.SetDefault("summary.api_key", "")
	v.SetDefault("summary.timeout", 30*time.Second)
	v.SetDefault("summary.concurrency", 4)

	v.SetDefault("cache.backend", string(types.CacheNone))
	v.SetDefault("cache.sqlite_path", "paper-brief-cache.db")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", 168*time.Hour)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// configFromViper assembles the process configuration. Secrets fill in the
// OpenAlex email and the API key when the config leaves them empty.
func configFromViper(v *viper.Viper, s secrets.Set, getenv func(string) string) types.Config {
	userAgent := v.GetString("search.user_agent")
	if userAgent == "" {
		userAgent = "paper-brief/" + version
	}

	cfg := types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: userAgent,
			},
			MaxResults: v.GetInt("search.max_results"),
			Email:      firstSet(v.GetString("search.email"), s.Lookup(secrets.OpenAlexEmail)),
		},
		Summary: types.SummaryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("summary.timeout"),
				UserAgent: userAgent,
			},
			Provider:    types.SummaryProvider(strings.ToLower(v.GetString("summary.provider"))),
			Model:       v.GetString("summary.model"),
			BaseURL:     v.GetString("summary.base_url"),
			APIKey:      v.GetString("summary.api_key"),
			Concurrency: v.GetInt("summary.concurrency"),
		},
		Cache: types.CacheConfig{
			Backend:       types.CacheBackend(strings.ToLower(v.GetString("cache.backend"))),
			SQLitePath:    v.GetString("cache.sqlite_path"),
			RedisAddr:     v.GetString("cache.redis_addr"),
			RedisPassword: v.GetString("cache.redis_password"),
			RedisDB:       v.GetInt("cache.redis_db"),
			TTL:           v.GetDuration("cache.ttl"),
		},
		Server: types.ServerConfig{
			Addr:            v.GetString("server.addr"),
			Mode:            v.GetString("server.mode"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	cfg.Summary.APIKey = resolveAPIKey(cfg.Summary, s, getenv)
	return cfg
}

// resolveAPIKey picks the first credential found in the configuration, the
// LLM_API_KEY environment variable, or the provider's secrets file.
func resolveAPIKey(cfg types.SummaryConfig, s secrets.Set, getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	secretKey := secrets.LLMAPIKey
	if cfg.Provider == types.ProviderGemini {
		secretKey = secrets.GeminiAPIKey
	}
	return firstSet(
		strings.TrimSpace(cfg.APIKey),
		strings.TrimSpace(getenv(llmAPIKeyEnv)),
		s.Lookup(secretKey),
	)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
