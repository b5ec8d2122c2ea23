// Package config loads tally's settings from viper and provides path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the home directory and expands $VARS.
// The path is returned unchanged when the home directory is unknown.
func ExpandPath(path string) string {
	rest, hasTilde := strings.CutPrefix(path, "~")
	if hasTilde && (rest == "" || strings.HasPrefix(rest, "/")) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	return os.ExpandEnv(path)
}
