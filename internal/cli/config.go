package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	GameFile  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("HEXMATCH_SERVER", "http://localhost:8080"),
		GameFile:  getEnvOrDefault("HEXMATCH_GAME_FILE", defaultGameFile()),
		Output:    OutputText,
		Verbose:   false,
	}
}

// Validate checks the configured output format
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
}

// CurrentGame returns the ID of the last game started from this CLI, or ""
// if there is none
func (c *Config) CurrentGame() (string, error) {
	data, err := os.ReadFile(c.GameFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveCurrentGame remembers id for commands run without a game ID
func (c *Config) SaveCurrentGame(id string) error {
	dir := filepath.Dir(c.GameFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.GameFile, []byte(id), 0600)
}

// ClearCurrentGame forgets the current game if it is id
func (c *Config) ClearCurrentGame(id string) error {
	current, err := c.CurrentGame()
	if err != nil || current != id {
		return err
	}
	if err := os.Remove(c.GameFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultGameFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hexmatch/game"
	}
	return filepath.Join(home, ".hexmatch", "game")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
