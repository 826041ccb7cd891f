package factory

import (
	"context"
	"time"

	"github.com/mcoot/hexmatch-go/internal/dependencies/mocks"
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
	"github.com/mcoot/hexmatch-go/internal/storage/memory"
	"github.com/mcoot/hexmatch-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := testutil.NopLogger()

	app := newWithDependencies(store, mockClock, mockRandom, stats.NewLogReporter(logger), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedPiece puts a piece of value v straight onto a stored game's board,
// bypassing the turn flow
func (t *TestApp) SeedPiece(id model.GameID, pos model.Position, v int) error {
	ctx := context.Background()
	g, err := t.Storage.GetGame(ctx, id)
	if err != nil {
		return err
	}
	p := model.NewPiece(v)
	if v == model.MaxPieceValue {
		p.IsCollectible = true
	}
	if err := g.Board.Place(pos, p, g.NextSequence()); err != nil {
		return err
	}
	return t.Storage.SaveGame(ctx, g)
}

// SetHand replaces the piece in hand of a stored game with one of value v
func (t *TestApp) SetHand(id model.GameID, v int) error {
	ctx := context.Background()
	g, err := t.Storage.GetGame(ctx, id)
	if err != nil {
		return err
	}
	g.CurrentPiece = model.NewPiece(v)
	g.CurrentPiece.Caption = g.CurrentPiece.Description()
	return t.Storage.SaveGame(ctx, g)
}
