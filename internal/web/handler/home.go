package handler

import (
	"net/http"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/board"
	"github.com/mcoot/hexmatch-go/internal/web/middleware"
	"github.com/mcoot/hexmatch-go/internal/web/templates/layout"
	"github.com/mcoot/hexmatch-go/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	boardService *board.Service
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(boardService *board.Service) *HomeHandler {
	return &HomeHandler{boardService: boardService}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	var modes []pages.ModeOption
	for _, mode := range model.LevelModes() {
		level, err := h.boardService.Layout(mode)
		if err != nil {
			continue
		}
		modes = append(modes, pages.ModeOption{
			Mode:     mode,
			Name:     level.Name,
			Playable: level.Width*level.Height - len(level.Void),
		})
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
		Modes: modes,
	}

	render(w, r, http.StatusOK, pages.Home(data))
}
