// Package snapshot converts games to and from a self-verifying byte form.
// Every piece field, the board shape, void cells and the hand piece survive a
// round trip, so a restored game resumes exactly where it was saved.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/hexmatch-go/internal/model"
)

// Version is bumped whenever the record layout changes incompatibly
const Version = 1

var (
	ErrCorruptSnapshot     = errors.New("snapshot digest mismatch")
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
)

type envelope struct {
	Version int             `json:"version"`
	Digest  string          `json:"digest"`
	Game    json.RawMessage `json:"game"`
}

type gameRecord struct {
	ID           model.GameID    `json:"id"`
	Mode         model.LevelMode `json:"mode"`
	Phase        model.TurnPhase `json:"phase"`
	Score        int             `json:"score"`
	Turn         int             `json:"turn"`
	AddedCounter int             `json:"added_counter"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Board        boardRecord     `json:"board"`
	CurrentPiece *pieceRecord    `json:"current_piece,omitempty"`
}

type boardRecord struct {
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Void   []model.Position `json:"void,omitempty"`
	Pieces []placedRecord   `json:"pieces,omitempty"`
}

type placedRecord struct {
	Position model.Position `json:"position"`
	Piece    pieceRecord    `json:"piece"`
}

type pieceRecord struct {
	Kind             model.PieceKind `json:"kind"`
	Value            *int            `json:"value,omitempty"`
	OriginalValue    int             `json:"original_value"`
	IsCollectible    bool            `json:"is_collectible,omitempty"`
	Caption          string          `json:"caption,omitempty"`
	SkipTurnCounter  int             `json:"skip_turn_counter"`
	SkipTurnsOnPlace int             `json:"skip_turns_on_place"`
	DidTakeTurn      bool            `json:"did_take_turn,omitempty"`
	Added            int             `json:"added"`
}

// Encode serializes a game and signs it with a BLAKE2b digest
func Encode(game *model.Game) ([]byte, error) {
	if game == nil || game.Board == nil {
		return nil, errors.New("snapshot: game has no board")
	}

	payload, err := json.Marshal(toGameRecord(game))
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode game: %w", err)
	}

	return json.Marshal(envelope{
		Version: Version,
		Digest:  digest(payload),
		Game:    payload,
	})
}

// Decode verifies and rebuilds a game produced by Encode
func Decode(data []byte) (*model.Game, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, env.Version)
	}
	if digest(env.Game) != env.Digest {
		return nil, ErrCorruptSnapshot
	}

	var rec gameRecord
	if err := json.Unmarshal(env.Game, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return fromGameRecord(&rec)
}

func digest(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func toGameRecord(g *model.Game) *gameRecord {
	rec := &gameRecord{
		ID:           g.ID,
		Mode:         g.Mode,
		Phase:        g.Phase,
		Score:        g.Score,
		Turn:         g.Turn,
		AddedCounter: g.AddedCounter,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
		Board: boardRecord{
			Width:  g.Board.Width,
			Height: g.Board.Height,
		},
	}

	for _, c := range g.Board.VoidCells() {
		rec.Board.Void = append(rec.Board.Void, c.Position)
	}
	for _, c := range g.Board.OccupiedCells() {
		rec.Board.Pieces = append(rec.Board.Pieces, placedRecord{
			Position: c.Position,
			Piece:    toPieceRecord(c.Piece()),
		})
	}
	if g.CurrentPiece != nil {
		p := toPieceRecord(g.CurrentPiece)
		rec.CurrentPiece = &p
	}

	return rec
}

func toPieceRecord(p *model.Piece) pieceRecord {
	rec := pieceRecord{
		Kind:             p.Kind,
		OriginalValue:    p.OriginalValue,
		IsCollectible:    p.IsCollectible,
		Caption:          p.Caption,
		SkipTurnCounter:  p.SkipTurnCounter,
		SkipTurnsOnPlace: p.SkipTurnsOnPlace,
		DidTakeTurn:      p.DidTakeTurn,
		Added:            p.Added,
	}
	if v, ok := p.RawValue(); ok {
		rec.Value = &v
	}
	return rec
}

func fromGameRecord(rec *gameRecord) (*model.Game, error) {
	board, err := model.NewBoard(rec.Board.Width, rec.Board.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	for _, pos := range rec.Board.Void {
		c := board.CellAt(pos)
		if c == nil {
			return nil, fmt.Errorf("%w: void cell %s out of range", ErrCorruptSnapshot, pos)
		}
		if err := c.SetVoid(true); err != nil {
			return nil, err
		}
	}
	for _, placed := range rec.Board.Pieces {
		if err := board.Restore(placed.Position, fromPieceRecord(placed.Piece)); err != nil {
			return nil, fmt.Errorf("%w: piece at %s: %v", ErrCorruptSnapshot, placed.Position, err)
		}
	}

	game := &model.Game{
		ID:           rec.ID,
		Mode:         rec.Mode,
		Phase:        rec.Phase,
		Board:        board,
		Score:        rec.Score,
		Turn:         rec.Turn,
		AddedCounter: rec.AddedCounter,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.CurrentPiece != nil {
		game.CurrentPiece = fromPieceRecord(*rec.CurrentPiece)
	}

	return game, nil
}

func fromPieceRecord(rec pieceRecord) *model.Piece {
	p := &model.Piece{
		Kind:             rec.Kind,
		IsCollectible:    rec.IsCollectible,
		Caption:          rec.Caption,
		SkipTurnCounter:  rec.SkipTurnCounter,
		SkipTurnsOnPlace: rec.SkipTurnsOnPlace,
		DidTakeTurn:      rec.DidTakeTurn,
		Added:            rec.Added,
		OriginalValue:    rec.OriginalValue,
	}
	if rec.Value != nil {
		p.RestoreValue(*rec.Value, true)
	}
	return p
}
