package model

import "fmt"

// MaxPieceValue is the highest rank any piece can reach. A piece at this rank
// never merges further.
const MaxPieceValue = 6

// PieceKind selects the merge rules a piece follows
type PieceKind string

const (
	PieceKindStandard PieceKind = "standard"
)

// MergeableRank is implemented once per piece kind. It lets special kinds widen
// the range of values they merge with or act differently between turns.
type MergeableRank interface {
	MinMergeValue(p *Piece) int
	MaxMergeValue(p *Piece) int
	CanMergeWith(p, other *Piece) bool
	TakeTurn(p *Piece) bool
}

var rankRules = map[PieceKind]MergeableRank{
	PieceKindStandard: standardRank{},
}

// standardRank merges only with pieces of exactly the same value
type standardRank struct{}

func (standardRank) MinMergeValue(p *Piece) int { return p.Value() }

func (standardRank) MaxMergeValue(p *Piece) int { return p.Value() }

func (standardRank) CanMergeWith(p, other *Piece) bool {
	v := other.Value()
	return v >= p.MinMergeValue() && v <= p.MaxMergeValue() && p.Value() < MaxPieceValue
}

func (standardRank) TakeTurn(p *Piece) bool {
	if p.SkipTurnCounter > 0 {
		p.SkipTurnCounter--
		p.DidTakeTurn = false
	} else {
		p.DidTakeTurn = true
	}
	return p.DidTakeTurn
}

// Piece is a merge-able game token. A piece does not know which cell holds it;
// use Board.Locate when the position is needed.
type Piece struct {
	Kind PieceKind

	// IsCollectible controls whether the player can take the piece off the board
	IsCollectible bool

	// Caption is displayed while the piece is in the player's hand
	Caption string

	// Turns left to sit idle, and how many to sit idle after each placement
	SkipTurnCounter  int
	SkipTurnsOnPlace int

	// DidTakeTurn reports whether the piece acted on the last pass
	DidTakeTurn bool

	// Added is the placement sequence number; lower means placed earlier
	Added int

	// OriginalValue is fixed by the first value assignment
	OriginalValue int

	value *int // nil until the first assignment
}

// NewPiece creates a standard piece of the given value
func NewPiece(value int) *Piece {
	p := &Piece{
		Kind:             PieceKindStandard,
		SkipTurnCounter:  1,
		SkipTurnsOnPlace: 1,
	}
	p.SetValue(value)
	return p
}

func (p *Piece) rules() MergeableRank {
	if r, ok := rankRules[p.Kind]; ok {
		return r
	}
	return standardRank{}
}

// Value returns the piece's rank, or 0 if it has never been assigned
func (p *Piece) Value() int {
	if p.value == nil {
		return 0
	}
	return *p.value
}

// SetValue changes the rank. The first assignment also fixes OriginalValue.
func (p *Piece) SetValue(v int) {
	if p.value == nil {
		p.OriginalValue = v
	}
	p.value = &v
}

// RawValue returns the stored rank and whether one has been assigned
func (p *Piece) RawValue() (int, bool) {
	if p.value == nil {
		return 0, false
	}
	return *p.value, true
}

// RestoreValue sets the stored rank without touching OriginalValue.
// Used when loading saved games.
func (p *Piece) RestoreValue(v int, set bool) {
	if !set {
		p.value = nil
		return
	}
	p.value = &v
}

// MinMergeValue returns the lowest value this piece can merge with
func (p *Piece) MinMergeValue() int {
	return p.rules().MinMergeValue(p)
}

// MaxMergeValue returns the highest value this piece can merge with
func (p *Piece) MaxMergeValue() int {
	return p.rules().MaxMergeValue(p)
}

// CanMergeWith returns true if this piece can merge with other
func (p *Piece) CanMergeWith(other *Piece) bool {
	if other == nil {
		return false
	}
	return p.rules().CanMergeWith(p, other)
}

// WithMergeTest runs fn while the piece's value is raised by one, as though it
// had already absorbed a merge. The value is restored when fn returns, even if
// fn panics.
func (p *Piece) WithMergeTest(fn func()) {
	p.updateValueForMergeTest()
	defer p.rollbackValueForMergeTest()
	fn()
}

func (p *Piece) updateValueForMergeTest() {
	p.SetValue(p.Value() + 1)
}

func (p *Piece) rollbackValueForMergeTest() {
	p.SetValue(p.Value() - 1)
}

// WasPlacedWithMerge upgrades the piece to the rank after mergeValue, capped at
// MaxPieceValue, and returns it as the surviving merged piece
func (p *Piece) WasPlacedWithMerge(mergeValue int) *Piece {
	next := mergeValue + 1
	if next > MaxPieceValue {
		next = MaxPieceValue
	}
	p.SetValue(next)
	p.SkipTurnCounter = p.SkipTurnsOnPlace
	p.Caption = ""
	return p
}

// WasPlacedWithoutMerge resets the piece after a plain placement
func (p *Piece) WasPlacedWithoutMerge() {
	p.SkipTurnCounter = p.SkipTurnsOnPlace
	p.Caption = ""
}

// TakeTurn lets the piece act after the player's turn. Returns true if it did something.
func (p *Piece) TakeTurn() bool {
	return p.rules().TakeTurn(p)
}

// StatsKey returns the counter key used to track pieces of this kind and value
func (p *Piece) StatsKey() string {
	return fmt.Sprintf("piece_value_%d", p.Value())
}

// PointValue returns the score awarded for this piece at its current value
func (p *Piece) PointValue() int {
	switch p.Value() {
	case 1:
		return 100
	case 2:
		return 500
	case 3:
		return 1000
	case 4:
		return 10000
	case 5:
		return 25000
	case 6:
		return 50000
	default:
		return 10
	}
}

// Description returns a display name for the piece's value
func (p *Piece) Description() string {
	return DescribeValue(p.Value())
}

// DescribeValue returns the display name for a piece value
func DescribeValue(v int) string {
	switch v {
	case 0:
		return "Triangle"
	case 1:
		return "Square"
	case 2:
		return "Pentagon"
	case 3:
		return "Hexagon"
	case 4:
		return "Star"
	case 5:
		return "Gold Star"
	default:
		return "Unknown"
	}
}
