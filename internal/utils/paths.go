// Package utils holds small helpers shared across lazyuntrack packages.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerms is the mode used when creating state directories.
const DefaultDirPerms = 0o750

// ExpandPath resolves a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// ShortenHome replaces the home directory prefix with ~ for display.
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}

// IsPathWithin reports whether target is base itself or a descendant of base.
func IsPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
