// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: places-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultDir is the secrets directory relative to the working directory.
	DefaultDir = ".secrets"

	// PlacesAPIKey is the key file holding the Places API key.
	PlacesAPIKey = "places-api-key"

	// PlaceholderAPIKey is sent when no key is configured so the failure is
	// visible upstream rather than silent.
	PlaceholderAPIKey = "YOUR_API_KEY_HERE"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey returns the first non-empty candidate, then the places-api-key
// secret. The second result is false when no key was found and the
// placeholder is returned instead.
func APIKey(secrets map[string]string, candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" && c != PlaceholderAPIKey {
			return c, true
		}
	}
	if v := secrets[PlacesAPIKey]; v != "" {
		return v, true
	}
	return PlaceholderAPIKey, false
}
