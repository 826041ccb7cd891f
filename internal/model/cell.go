package model

// Cell is one addressable location on a board. A void cell is never playable
// and never holds a piece.
type Cell struct {
	Position Position
	Void     bool

	piece *Piece
}

// Piece returns the occupant, or nil if the cell is empty
func (c *Cell) Piece() *Piece {
	return c.piece
}

// IsOccupied returns true if the cell holds a piece
func (c *Cell) IsOccupied() bool {
	return c.piece != nil
}

// IsPlayable returns true if a piece may be placed here
func (c *Cell) IsPlayable() bool {
	return !c.Void && c.piece == nil
}

// SetVoid marks the cell as void or playable. An occupied cell cannot be voided.
func (c *Cell) SetVoid(void bool) error {
	if void && c.piece != nil {
		return ErrInvalidPlacement
	}
	c.Void = void
	return nil
}

// take empties the cell and returns its former occupant
func (c *Cell) take() *Piece {
	p := c.piece
	c.piece = nil
	return p
}
