// Package paths resolves filesystem locations used by bakjob.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is used as the directory name under the xdg config/state homes.
const AppName = "bakjob"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// ConfigHome returns the base directory for user configuration files.
// Respects XDG_CONFIG_HOME, falling back to ~/.config.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding bakjob's own configuration file.
// Returns $XDG_CONFIG_HOME/bakjob.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir returns the directory for run-time state such as log files.
// Returns $XDG_STATE_HOME/bakjob.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}
