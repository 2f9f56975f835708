// Package filesystem resolves the per-user directories ghask writes to.
package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns the ghask state directory (~/.ghask). Config, history, and
// the classification cache all live beneath it.
func AppDir() string {
	return filepath.Join(UserHomeDir(), ".ghask")
}
