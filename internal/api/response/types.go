package response

import (
	"time"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
)

// Piece represents a piece in API responses
type Piece struct {
	Value         int    `json:"value"`
	Description   string `json:"description"`
	Caption       string `json:"caption,omitempty"`
	IsCollectible bool   `json:"is_collectible,omitempty"`
	Added         int    `json:"added"`
}

// PieceFromModel converts a model.Piece
func PieceFromModel(p *model.Piece) *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Value:         p.Value(),
		Description:   p.Description(),
		Caption:       p.Caption,
		IsCollectible: p.IsCollectible,
		Added:         p.Added,
	}
}

// Cell represents one board cell
type Cell struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Void  bool   `json:"void,omitempty"`
	Piece *Piece `json:"piece,omitempty"`
}

// Board represents a game board. Cells are listed x outer, y inner.
type Board struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board) Board {
	cells := make([]Cell, 0, b.Width*b.Height)
	for _, c := range b.Cells() {
		cells = append(cells, Cell{
			X:     c.Position.X,
			Y:     c.Position.Y,
			Void:  c.Void,
			Piece: PieceFromModel(c.Piece()),
		})
	}
	return Board{Width: b.Width, Height: b.Height, Cells: cells}
}

// Game represents the full state of a game
type Game struct {
	ID           string    `json:"id"`
	Mode         string    `json:"mode"`
	Phase        string    `json:"phase"`
	Score        int       `json:"score"`
	Turn         int       `json:"turn"`
	CurrentPiece *Piece    `json:"current_piece,omitempty"`
	Board        Board     `json:"board"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GameFromModel converts model.Game to response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:           string(g.ID),
		Mode:         string(g.Mode),
		Phase:        string(g.Phase),
		Score:        g.Score,
		Turn:         g.Turn,
		CurrentPiece: PieceFromModel(g.CurrentPiece),
		Board:        BoardFromModel(g.Board),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// Merge summarises the merge a placement caused
type Merge struct {
	Survivor   model.Position   `json:"survivor"`
	Value      int              `json:"value"`
	MergeValue int              `json:"merge_value"`
	Removed    []model.Position `json:"removed"`
}

// MergeFromModel converts model.MergeResult, nil if nothing merged
func MergeFromModel(r *model.MergeResult) *Merge {
	if r == nil || !r.Merged() {
		return nil
	}
	removed := make([]model.Position, len(r.Removed))
	for i, rp := range r.Removed {
		removed[i] = rp.Position
	}
	return &Merge{
		Survivor:   r.SurvivorPosition,
		Value:      r.Survivor.Value(),
		MergeValue: r.MergeValue,
		Removed:    removed,
	}
}

// TurnResult is the response after placing or collecting
type TurnResult struct {
	Turn          int              `json:"turn"`
	Phase         string           `json:"phase"`
	PointsAwarded int              `json:"points_awarded"`
	Score         int              `json:"score"`
	Merge         *Merge           `json:"merge,omitempty"`
	Acted         []model.Position `json:"acted,omitempty"`
	Events        []model.Event    `json:"events"`
	Game          Game             `json:"game"`
}

// TurnResultFromModel converts model.TurnResult together with the game it left behind
func TurnResultFromModel(t *model.TurnResult, g *model.Game) TurnResult {
	return TurnResult{
		Turn:          t.Turn,
		Phase:         string(t.Phase),
		PointsAwarded: t.PointsAwarded,
		Score:         t.Score,
		Merge:         MergeFromModel(t.Merge),
		Acted:         t.Acted,
		Events:        t.Events,
		Game:          GameFromModel(g),
	}
}

// Stats is the response for the statistics endpoint
type Stats struct {
	Stats []stats.Entry `json:"stats"`
}

// Hint is where a bot strategy would place the current piece
type Hint struct {
	Strategy string         `json:"strategy"`
	Position model.Position `json:"position"`
}

// Move is one placement a bot made
type Move struct {
	Position      model.Position `json:"position"`
	PointsAwarded int            `json:"points_awarded"`
	Merge         *Merge         `json:"merge,omitempty"`
}

// AutoPlay is the response after a bot took turns
type AutoPlay struct {
	Strategy string `json:"strategy"`
	Moves    []Move `json:"moves"`
	Score    int    `json:"score"`
	Phase    string `json:"phase"`
	Game     Game   `json:"game"`
}
