package handler

import (
	"net/http"

	"github.com/mcoot/hexmatch-go/internal/services/stats"
	"github.com/mcoot/hexmatch-go/internal/web/middleware"
	"github.com/mcoot/hexmatch-go/internal/web/templates/layout"
	"github.com/mcoot/hexmatch-go/internal/web/templates/pages"
)

// StatsHandler renders the statistics page
type StatsHandler struct {
	statsService stats.ServiceInterface
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService stats.ServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// View renders every counter
func (h *StatsHandler) View(w http.ResponseWriter, r *http.Request) {
	pageData := layout.PageData{Title: "Statistics", Flash: middleware.GetFlash(r.Context())}

	entries, err := h.statsService.All(r.Context())
	if err != nil {
		render(w, r, http.StatusInternalServerError, pages.ErrorPage(pageData, "Error", "Statistics are unavailable."))
		return
	}

	render(w, r, http.StatusOK, pages.Stats(pages.StatsData{PageData: pageData, Entries: entries}))
}
