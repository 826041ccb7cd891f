package bot

import "github.com/mcoot/hexmatch-go/internal/model"

// Strategy defines how a bot chooses where to place the piece in hand
type Strategy interface {
	// ChoosePosition selects an empty cell for the game's current piece.
	// ok is false when the board has no empty cell.
	ChoosePosition(game *model.Game) (pos model.Position, ok bool)
}

// handPiece returns a stand-in for the piece the player holds
func handPiece(game *model.Game) *model.Piece {
	if game.CurrentPiece == nil {
		return model.NewPiece(0)
	}
	return model.NewPiece(game.CurrentPiece.Value())
}
