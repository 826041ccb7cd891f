package board

import (
	"log/slog"

	"github.com/mcoot/hexmatch-go/internal/model"
)

// Layout describes the board a level mode is played on
type Layout struct {
	Mode   model.LevelMode
	Name   string
	Width  int
	Height int
	Void   []model.Position
}

// Service builds boards for level modes and validates placements
type Service struct {
	layouts map[model.LevelMode]*Layout
	logger  *slog.Logger
}

// New creates a new BoardService with the built-in level layouts
func New(logger *slog.Logger) *Service {
	layouts := make(map[model.LevelMode]*Layout)
	for _, l := range builtinLayouts() {
		layouts[l.Mode] = l
	}
	return &Service{
		layouts: layouts,
		logger:  logger,
	}
}

// Layout returns the layout for a level mode
func (s *Service) Layout(mode model.LevelMode) (*Layout, error) {
	l, ok := s.layouts[mode]
	if !ok {
		return nil, model.ErrUnknownLevel
	}
	return l, nil
}

// NewBoard creates an empty board for a level mode with its void cells applied
func (s *Service) NewBoard(mode model.LevelMode) (*model.Board, error) {
	l, err := s.Layout(mode)
	if err != nil {
		return nil, err
	}

	board, err := model.NewBoard(l.Width, l.Height)
	if err != nil {
		return nil, err
	}

	for _, pos := range l.Void {
		c := board.CellAt(pos)
		if c == nil {
			continue
		}
		if err := c.SetVoid(true); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("board created",
		slog.String("mode", string(mode)),
		slog.Int("width", l.Width),
		slog.Int("height", l.Height),
		slog.Int("void_cells", len(l.Void)),
	)

	return board, nil
}

// ValidatePlacement checks that pos is on the board, playable and empty
func (s *Service) ValidatePlacement(board *model.Board, pos model.Position) error {
	c := board.CellAt(pos)
	if c == nil || !c.IsPlayable() {
		return model.ErrInvalidPlacement
	}
	return nil
}

// IsFull checks if no playable cell remains
func (s *Service) IsFull(board *model.Board) bool {
	return len(board.EmptyCells()) == 0
}

// Interface for dependency injection
type ServiceInterface interface {
	Layout(mode model.LevelMode) (*Layout, error)
	NewBoard(mode model.LevelMode) (*model.Board, error)
	ValidatePlacement(board *model.Board, pos model.Position) error
	IsFull(board *model.Board) bool
}

var _ ServiceInterface = (*Service)(nil)
