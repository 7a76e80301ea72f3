package paths

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.sparkd unless overridden.
func BaseDir(override string) string {
	if override != "" {
		return override
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sparkd")
}

// DBPath returns the sqlite database path inside the data dir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "sparkd.db")
}

// SocketPath returns the unix socket the daemon serves on.
func SocketPath(dataDir string) string {
	return filepath.Join(dataDir, "sparkd.sock")
}

// LockPath returns the single-instance lock file path.
func LockPath(dataDir string) string {
	return filepath.Join(dataDir, "LOCK")
}

// LogDir returns the log directory inside the data dir.
func LogDir(dataDir string) string {
	return filepath.Join(dataDir, "logs")
}

// LogPath returns the daemon log file path.
func LogPath(dataDir string) string {
	return filepath.Join(LogDir(dataDir), "sparkd.log")
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(""), "config.toml")
}

// EnsureDirs creates the data directory tree with owner-only permissions.
func EnsureDirs(dataDir string) error {
	for _, d := range []string{dataDir, LogDir(dataDir)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
