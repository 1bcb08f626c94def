// Package config holds the pipeline configuration and its file-path
// helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a path from a config file or flag: a leading ~
// becomes the user's home directory and $VAR references are expanded.
// If the home directory cannot be determined the ~ is left in place.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
