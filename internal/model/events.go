package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Piece events, one per notification point a renderer reacts to
	EventPlacedWithMerge    EventType = "placed_with_merge"
	EventPlacedWithoutMerge EventType = "placed_without_merge"
	EventCollected          EventType = "collected"
	EventRemoved            EventType = "removed"

	// Game events
	EventTurnComplete  EventType = "turn_complete"
	EventGameOver      EventType = "game_over"
	EventGameAbandoned EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// PiecePayload describes the piece an event refers to
type PiecePayload struct {
	Position    Position `json:"position"`
	Value       int      `json:"value"`
	Description string   `json:"description"`
}

// RemovedPayload contains data for removed events
type RemovedPayload struct {
	PiecePayload
	MergedInto Position `json:"merged_into"`
}

// TurnCompletePayload contains data for turn complete events
type TurnCompletePayload struct {
	Turn      int `json:"turn"`
	Score     int `json:"score"`
	NextValue int `json:"next_value"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	FinalScore int `json:"final_score"`
	Turns      int `json:"turns"`
}

// PiecePayloadFor builds a payload for p at pos
func PiecePayloadFor(p *Piece, pos Position) PiecePayload {
	return PiecePayload{
		Position:    pos,
		Value:       p.Value(),
		Description: p.Description(),
	}
}
