// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory holding one plain-text
// file per secret. The filename is the key and the trimmed contents are the
// value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-brief/internal/logging"
)

// DefaultDir is the secrets directory used when none is configured.
const DefaultDir = ".secrets"

// Recognized key files.
const (
	LLMAPIKey     = "llm-api-key"
	GeminiAPIKey  = "gemini-api-key"
	OpenAlexEmail = "openalex-email"
)

// Set maps key names to values.
type Set map[string]string

// Lookup returns the value for key, or "" if the key is absent. It is safe
// on a nil Set.
func (s Set) Lookup(key string) string {
	return s[key]
}

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty Set. Unreadable files are logged and
// skipped.
func Load(dir string, logger *zap.Logger) (Set, error) {
	logger = logging.OrNop(logger)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}
