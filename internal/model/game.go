package model

import "time"

// GameID uniquely identifies a game
type GameID string

// LevelMode selects the board layout a game is played on
type LevelMode string

const (
	LevelWelcome LevelMode = "welcome" // Tutorial
	LevelHexagon LevelMode = "hexagon" // Beginner
	LevelMoat    LevelMode = "moat"
	LevelPit     LevelMode = "pit"
)

// LevelModes returns every supported mode
func LevelModes() []LevelMode {
	return []LevelMode{LevelWelcome, LevelHexagon, LevelMoat, LevelPit}
}

// IsValid returns true if m is a supported mode
func (m LevelMode) IsValid() bool {
	for _, mode := range LevelModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// TurnPhase is the position of a game within the turn state machine
type TurnPhase string

const (
	PhaseAwaitingPlacement TurnPhase = "awaiting_placement" // Waiting for the player to choose a cell
	PhasePlaced            TurnPhase = "placed"             // Hand piece is on the board
	PhaseMergeResolved     TurnPhase = "merge_resolved"     // Merges applied, score updated
	PhaseTurnsAdvanced     TurnPhase = "turns_advanced"     // Other pieces have taken their turn
	PhaseGameOver          TurnPhase = "game_over"          // No legal placement remains
)

// Game is a single play-through on one board
type Game struct {
	ID    GameID
	Mode  LevelMode
	Phase TurnPhase
	Board *Board

	// CurrentPiece is held in the player's hand until placed
	CurrentPiece *Piece

	Score int
	Turn  int // Completed turns

	// AddedCounter hands out placement sequence numbers
	AddedCounter int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextSequence returns the next placement sequence number
func (g *Game) NextSequence() int {
	seq := g.AddedCounter
	g.AddedCounter++
	return seq
}

// IsOver returns true if the game has ended
func (g *Game) IsOver() bool {
	return g.Phase == PhaseGameOver
}

// RemovedPiece records a piece taken off the board by a merge
type RemovedPiece struct {
	Position Position
	Value    int
	Points   int
}

// MergeResult is the outcome of resolving one placement
type MergeResult struct {
	Position Position // Where the piece was placed
	Placed   *Piece

	// Members are the pieces that merged with Placed, in discovery order.
	// Placed itself is not a member. Empty when the placement did not merge.
	Members []*Piece

	// MergeValue is the rank the group shared; the survivor ends one above it
	MergeValue int

	Survivor         *Piece
	SurvivorPosition Position
	Removed          []RemovedPiece
}

// Merged returns true if the placement merged with at least one piece
func (r *MergeResult) Merged() bool {
	return len(r.Members) > 0
}

// GroupSize returns how many pieces took part in the merge, counting Placed.
// A placement without a merge has a group of one.
func (r *MergeResult) GroupSize() int {
	return len(r.Members) + 1
}

// TurnResult is everything that happened during one player action
type TurnResult struct {
	GameID        GameID
	Turn          int
	Phase         TurnPhase
	Merge         *MergeResult
	PointsAwarded int
	Score         int
	StatsKeys     []string   // Counters incremented this turn
	Acted         []Position // Pieces that reported acting during the turn pass
	Events        []Event
}
