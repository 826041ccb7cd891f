package components_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/web/templates/components"
)

func newBoardGame(t *testing.T) *model.Game {
	t.Helper()
	b, err := model.NewBoard(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.Cell(1, 1).SetVoid(true))

	gem := model.NewPiece(6)
	gem.IsCollectible = true
	require.NoError(t, b.Place(model.Position{X: 0, Y: 0}, model.NewPiece(1), 0))
	require.NoError(t, b.Place(model.Position{X: 1, Y: 0}, gem, 1))

	return &model.Game{
		ID:           "g1",
		Phase:        model.PhaseAwaitingPlacement,
		Board:        b,
		CurrentPiece: model.NewPiece(0),
	}
}

func renderBoard(t *testing.T, g *model.Game, readOnly bool) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, components.GameBoard(g, readOnly).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestGameBoardMarksCells(t *testing.T) {
	doc := renderBoard(t, newBoardGame(t), false)

	assert.Equal(t, 2, doc.Find("#game-board .column").Length())
	assert.Equal(t, 1, doc.Find("#game-board .column.odd").Length())
	assert.Equal(t, 1, doc.Find(`.cell.void[data-x="1"][data-y="1"]`).Length())
	assert.Equal(t, 1, doc.Find(`.cell.empty[data-x="0"][data-y="1"]`).Length())
	assert.Equal(t, 2, doc.Find(".cell.occupied").Length())

	piece := doc.Find(`.cell[data-x="0"][data-y="0"] .piece`)
	v, _ := piece.Attr("data-value")
	assert.Equal(t, "1", v)
	assert.False(t, piece.HasClass("collectible"))
	assert.True(t, doc.Find(`.cell[data-x="1"][data-y="0"] .piece`).HasClass("collectible"))
}

func TestGameBoardForms(t *testing.T) {
	doc := renderBoard(t, newBoardGame(t), false)

	place := doc.Find(`.cell[data-x="0"][data-y="1"] form`)
	action, _ := place.Attr("action")
	assert.Equal(t, "/games/g1/place", action)
	assert.Equal(t, 1, place.Find("button.place").Length())

	collect := doc.Find(`.cell[data-x="1"][data-y="0"] form`)
	action, _ = collect.Attr("action")
	assert.Equal(t, "/games/g1/collect", action)
	x, _ := collect.Find("input[name=x]").Attr("value")
	y, _ := collect.Find("input[name=y]").Attr("value")
	assert.Equal(t, "1", x)
	assert.Equal(t, "0", y)

	assert.Equal(t, 0, doc.Find(`.cell[data-x="0"][data-y="0"] form`).Length())
}

func TestGameBoardReadOnlyHasNoForms(t *testing.T) {
	doc := renderBoard(t, newBoardGame(t), true)

	assert.Equal(t, 0, doc.Find("#game-board form").Length())
	assert.Equal(t, 2, doc.Find(".piece").Length())
}

func TestGameStatusShowsHandOrGameOver(t *testing.T) {
	g := newBoardGame(t)
	g.Score = 120
	g.Turn = 4

	var buf bytes.Buffer
	require.NoError(t, components.GameStatus(g).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "120", doc.Find("#score").Text())
	assert.Equal(t, "4", doc.Find("#turn").Text())
	assert.Equal(t, 1, doc.Find("#hand-piece").Length())
	assert.Equal(t, 0, doc.Find("#game-over").Length())

	g.Phase = model.PhaseGameOver
	buf.Reset()
	require.NoError(t, components.GameStatus(g).Render(context.Background(), &buf))
	doc, err = goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Game over! Final score 120.", doc.Find("#game-over").Text())
	assert.Equal(t, 0, doc.Find("#hand-piece").Length())
}
