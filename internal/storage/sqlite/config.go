package sqlite

import "time"

// Config holds SQLite file and connection settings
type Config struct {
	// Path is the database file. Parent directories are created if missing.
	Path string

	// BusyTimeout is how long a writer waits on a locked database
	BusyTimeout time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:        "./data/hexmatch.db",
		BusyTimeout: 5 * time.Second,
	}
}
