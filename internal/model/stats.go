package model

import (
	"fmt"
	"sort"
)

// Statistics counter keys
const (
	StatHighScore      = "highscore"
	StatPieceCollected = "piece_collected"
	StatGamesPlayed    = "games_played"
)

// Leaderboard identifiers reported to the social service
const (
	LeaderboardHighScore = "hexmatch.highscore"
)

// HighScoreKey returns the counter key holding the best score for a mode
func HighScoreKey(mode LevelMode) string {
	return fmt.Sprintf("%s_%s", StatHighScore, mode)
}

// LeaderboardFor returns the leaderboard identifier for a mode
func LeaderboardFor(mode LevelMode) string {
	return fmt.Sprintf("%s.%s", LeaderboardHighScore, mode)
}

var statNames = map[string]string{
	"piece_value_0":    "Pieces Placed or Merged/Triangle",
	"piece_value_1":    "Pieces Placed or Merged/Square",
	"piece_value_2":    "Pieces Placed or Merged/Pentagon",
	"piece_value_3":    "Pieces Placed or Merged/Hexagon",
	"piece_value_4":    "Pieces Placed or Merged/Star",
	"piece_value_5":    "Pieces Placed or Merged/Gold Star",
	"piece_value_6":    "Pieces Placed or Merged/Gold Stars (collectible)",
	StatPieceCollected: "Pieces Collected",
	StatGamesPlayed:    "Games Played",
	StatHighScore:      "High Scores/Overall",

	"highscore_welcome": "High Scores/Tutorial",
	"highscore_hexagon": "High Scores/Beginner",
	"highscore_moat":    "High Scores/The Moat",
	"highscore_pit":     "High Scores/The Pit",
}

// StatDisplayName returns a human-readable name for a counter key.
// Unknown keys are returned unchanged.
func StatDisplayName(key string) string {
	if name, ok := statNames[key]; ok {
		return name
	}
	return key
}

// StatKeys returns every counter key with a display name, sorted
func StatKeys() []string {
	keys := make([]string, 0, len(statNames))
	for k := range statNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
