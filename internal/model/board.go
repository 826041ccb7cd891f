package model

// Board owns a fixed grid of cells. Cells are stored column-major so that
// iteration runs x outer, y inner.
type Board struct {
	Width  int
	Height int

	cells [][]*Cell // cells[x][y]
}

// NewBoard creates a board of empty, playable cells
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}

	cells := make([][]*Cell, width)
	for x := range cells {
		cells[x] = make([]*Cell, height)
		for y := range cells[x] {
			cells[x][y] = &Cell{Position: Position{X: x, Y: y}}
		}
	}

	return &Board{
		Width:  width,
		Height: height,
		cells:  cells,
	}, nil
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Width && pos.Y >= 0 && pos.Y < b.Height
}

// Cell returns the cell at (x, y), or nil if out of range
func (b *Board) Cell(x, y int) *Cell {
	return b.CellAt(Position{X: x, Y: y})
}

// CellAt returns the cell at pos, or nil if out of range
func (b *Board) CellAt(pos Position) *Cell {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return b.cells[pos.X][pos.Y]
}

// Cells returns every cell in board order
func (b *Board) Cells() []*Cell {
	return b.filter(func(*Cell) bool { return true })
}

// OccupiedCells returns cells holding a piece, in board order
func (b *Board) OccupiedCells() []*Cell {
	return b.filter(func(c *Cell) bool { return c.piece != nil })
}

// EmptyCells returns playable cells with no piece, in board order
func (b *Board) EmptyCells() []*Cell {
	return b.filter(func(c *Cell) bool { return c.IsPlayable() })
}

// VoidCells returns void cells, in board order
func (b *Board) VoidCells() []*Cell {
	return b.filter(func(c *Cell) bool { return c.Void })
}

func (b *Board) filter(keep func(*Cell) bool) []*Cell {
	var result []*Cell
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height; y++ {
			if c := b.cells[x][y]; keep(c) {
				result = append(result, c)
			}
		}
	}
	return result
}

// NeighborCells returns the in-range, non-void cells adjacent to pos
func (b *Board) NeighborCells(pos Position) []*Cell {
	var result []*Cell
	for _, n := range Neighbors(pos) {
		if c := b.CellAt(n); c != nil && !c.Void {
			result = append(result, c)
		}
	}
	return result
}

// Locate returns the cell holding p, or nil if p is not on the board
func (b *Board) Locate(p *Piece) *Cell {
	if p == nil {
		return nil
	}
	for _, c := range b.OccupiedCells() {
		if c.piece == p {
			return c
		}
	}
	return nil
}

// Place puts p into the cell at pos and stamps it with the sequence number
// added. If p already sits elsewhere on the board that cell is cleared first.
// Fails without mutating anything if the target is out of range, void or occupied.
func (b *Board) Place(pos Position, p *Piece, added int) error {
	target := b.CellAt(pos)
	if target == nil || !target.IsPlayable() {
		return ErrInvalidPlacement
	}

	if previous := b.Locate(p); previous != nil {
		previous.take()
	}

	target.piece = p
	p.Added = added
	return nil
}

// Restore puts p into the cell at pos keeping its existing sequence number.
// Used when loading saved games.
func (b *Board) Restore(pos Position, p *Piece) error {
	target := b.CellAt(pos)
	if target == nil || !target.IsPlayable() {
		return ErrInvalidPlacement
	}
	target.piece = p
	return nil
}

// Remove clears the cell at pos and returns the former occupant
func (b *Board) Remove(pos Position) (*Piece, error) {
	c := b.CellAt(pos)
	if c == nil || c.piece == nil {
		return nil, ErrEmptyCell
	}
	return c.take(), nil
}
