package api

import (
	"errors"
	"net/http"

	service "github.com/kickdirtbb/framing/internal/app"
)

// PlotHandler serves chart data for one catcher-game.
type PlotHandler struct {
	deps        Dependencies
	defaultDate func() string
}

// NewPlotHandler creates a plot handler.
func NewPlotHandler(deps Dependencies, defaultDate func() string) *PlotHandler {
	return &PlotHandler{deps: deps, defaultDate: defaultDate}
}

// HandleGetPlot handles GET /api/plot/{catcher_id}/{game_pk}?date=YYYY-MM-DD.
func (h *PlotHandler) HandleGetPlot(w http.ResponseWriter, r *http.Request) {
	catcherID, err := idParam(r, "catcher_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	gamePK, err := idParam(r, "game_pk")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	date := dateParam(r, h.defaultDate)

	data, err := h.deps.Plot(r.Context(), catcherID, gamePK, date)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, data)
	case errors.Is(err, service.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", service.ErrNotFound)
	case errors.Is(err, service.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", service.ErrUpstream)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
