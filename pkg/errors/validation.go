package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxKeyLength is the longest system key accepted by [ValidateKey].
const MaxKeyLength = 128

// ValidateKey validates a system key.
//
// Keys appear in logs, metric labels and the dependency dump, so the rules are
// conservative:
//   - No empty keys
//   - No whitespace or control characters
//   - Maximum length of MaxKeyLength bytes
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "system key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return New(ErrCodeInvalidKey, "system key too long (max %d characters)", MaxKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidKey, "system key %q contains whitespace or control characters", key)
		}
	}
	return nil
}

// ValidateConfigPath validates a configuration file path.
// It requires a non-empty path with a supported extension (.toml, .yaml, .yml).
func ValidateConfigPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidConfig, "config path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidConfig, "config path contains a null byte")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return nil
	default:
		return New(ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}
