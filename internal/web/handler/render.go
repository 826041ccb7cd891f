package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/hexmatch-go/internal/model"
)

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// flashFor turns a failed action into a message for the player
func flashFor(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidPlacement):
		return "You can't place a piece there"
	case errors.Is(err, model.ErrNotCollectible):
		return "That piece can't be collected yet"
	case errors.Is(err, model.ErrEmptyCell):
		return "There is no piece there"
	case errors.Is(err, model.ErrGameNotFound):
		return "That game no longer exists"
	case errors.Is(err, model.ErrGameOver):
		return "This game is over"
	case errors.Is(err, model.ErrUnknownLevel):
		return "Unknown level"
	default:
		return "Something went wrong"
	}
}
