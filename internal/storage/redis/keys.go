package redis

import (
	"fmt"

	"github.com/mcoot/hexmatch-go/internal/model"
)

// Key prefix for all hexmatch data
const keyPrefix = "hexmatch"

// gameKey returns the Redis key for a saved game snapshot
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// statsKey returns the Redis key for the HASH of statistics counters
func statsKey() string {
	return fmt.Sprintf("%s:stats", keyPrefix)
}
