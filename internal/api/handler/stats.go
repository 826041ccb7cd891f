package handler

import (
	"net/http"

	"github.com/mcoot/hexmatch-go/internal/api/response"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
)

// StatsHandler handles the statistics endpoint
type StatsHandler struct {
	statsService stats.ServiceInterface
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService stats.ServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// List handles GET /api/v1/stats
func (h *StatsHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.statsService.All(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Stats{Stats: entries})
}
