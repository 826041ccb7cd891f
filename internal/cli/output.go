package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/hexmatch-go/internal/api/response"
	"github.com/mcoot/hexmatch-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error to w
func (o *Output) PrintError(w io.Writer, err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(w, string(data))
	} else {
		_, _ = fmt.Fprintf(w, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		o.println(string(data))
	} else {
		o.println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.TurnResult:
		o.printTurnResult(v)
	case response.Stats:
		o.printStats(v)
	case response.Hint:
		o.printf("%s bot suggests %s\n", model.BotStrategyDisplayName(v.Strategy), v.Position)
	case response.AutoPlay:
		o.printAutoPlay(v)
	case model.Event:
		o.printEvent(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) println(s string) {
	_, _ = fmt.Fprintln(o.w, s)
}

func (o *Output) printGame(g response.Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("Level: %s\n", g.Mode)
	o.printf("Phase: %s\n", g.Phase)
	o.printf("Score: %d\n", g.Score)
	o.printf("Turn: %d\n", g.Turn)
	if g.CurrentPiece != nil {
		o.printf("Next piece: %s (%d)\n", g.CurrentPiece.Description, g.CurrentPiece.Value)
	}
	o.println("")
	o.printBoard(g.Board)
}

func (o *Output) printTurnResult(t response.TurnResult) {
	if t.Merge != nil {
		o.printf("Merged %d pieces into value %d at %s\n",
			len(t.Merge.Removed)+1, t.Merge.Value, t.Merge.Survivor)
	}
	for _, ev := range t.Events {
		if ev.Type == model.EventCollected {
			o.println("Piece collected")
		}
	}
	o.printf("Points: +%d\n", t.PointsAwarded)
	o.printf("Score: %d\n", t.Score)
	o.printf("Turn: %d\n", t.Turn)
	if model.TurnPhase(t.Phase) == model.PhaseGameOver {
		o.println("Game over!")
	} else if t.Game.CurrentPiece != nil {
		o.printf("Next piece: %s (%d)\n", t.Game.CurrentPiece.Description, t.Game.CurrentPiece.Value)
	}
	o.println("")
	o.printBoard(t.Game.Board)
}

func (o *Output) printAutoPlay(a response.AutoPlay) {
	for i, m := range a.Moves {
		o.printf("%d. %s +%d", i+1, m.Position, m.PointsAwarded)
		if m.Merge != nil {
			o.printf(" (merged into %d)", m.Merge.Value)
		}
		o.println("")
	}
	o.printf("Score: %d\n", a.Score)
	if model.TurnPhase(a.Phase) == model.PhaseGameOver {
		o.println("Game over!")
	}
	o.println("")
	o.printBoard(a.Game.Board)
}

// printBoard draws the hex grid with odd columns half a row lower than even
// ones. Each board row takes two screen rows. Pieces show their value, with
// collectible pieces in parentheses.
func (o *Output) printBoard(b response.Board) {
	if b.Width == 0 || b.Height == 0 {
		return
	}

	cells := make(map[model.Position]response.Cell, len(b.Cells))
	for _, c := range b.Cells {
		cells[model.Position{X: c.X, Y: c.Y}] = c
	}

	o.printf("    ")
	for x := 0; x < b.Width; x++ {
		o.printf("%2d ", x)
	}
	o.println("")

	for r := 0; r < 2*b.Height; r++ {
		if r%2 == 0 {
			o.printf("%2d  ", b.Height-1-r/2)
		} else {
			o.printf("    ")
		}
		for x := 0; x < b.Width; x++ {
			offset := r - x%2
			if offset < 0 || offset%2 != 0 {
				o.printf("   ")
				continue
			}
			cell, ok := cells[model.Position{X: x, Y: b.Height - 1 - offset/2}]
			o.printf("%s", cellSymbol(cell, ok))
		}
		o.println("")
	}
}

func cellSymbol(c response.Cell, ok bool) string {
	switch {
	case !ok || c.Void:
		return "   "
	case c.Piece == nil:
		return " . "
	case c.Piece.IsCollectible:
		return fmt.Sprintf("(%d)", c.Piece.Value)
	default:
		return fmt.Sprintf(" %d ", c.Piece.Value)
	}
}

func (o *Output) printStats(s response.Stats) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	for _, e := range s.Stats {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", e.Name, e.Value)
	}
	_ = tw.Flush()
}

func (o *Output) printEvent(ev model.Event) {
	timestamp := ev.Timestamp.Local().Format("2006-01-02 15:04:05")
	if ev.Payload == nil {
		o.printf("[%s] %s\n", timestamp, ev.Type)
		return
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		o.printf("[%s] %s\n", timestamp, ev.Type)
		return
	}
	o.printf("[%s] %s: %s\n", timestamp, ev.Type, data)
}

func (o *Output) printHealthResult(h HealthResult) {
	o.printf("Status: %s\n", h.Status)
}
