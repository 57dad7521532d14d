package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	service "github.com/kickdirtbb/framing/internal/app"
	"github.com/kickdirtbb/framing/internal/domain/types"
)

const dateLayout = service.DateLayout

// CatchersHandler serves the per-day catcher list.
type CatchersHandler struct {
	deps        Dependencies
	defaultDate func() string
}

// NewCatchersHandler creates a catchers handler.
func NewCatchersHandler(deps Dependencies, defaultDate func() string) *CatchersHandler {
	return &CatchersHandler{deps: deps, defaultDate: defaultDate}
}

// HandleGetCatchers handles GET /api/statcast/catchers?date=YYYY-MM-DD.
// An upstream outage is reported as an empty list.
func (h *CatchersHandler) HandleGetCatchers(w http.ResponseWriter, r *http.Request) {
	date := dateParam(r, h.defaultDate)

	out, err := h.deps.Catchers(r.Context(), date)
	switch {
	case err == nil, errors.Is(err, service.ErrUpstream):
		if out == nil {
			out = []types.CatcherGameMetrics{}
		}
		writeJSON(w, http.StatusOK, out)
	case errors.Is(err, service.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func dateParam(r *http.Request, fallback func() string) string {
	if d := strings.TrimSpace(r.URL.Query().Get("date")); d != "" {
		return d
	}
	return fallback()
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidParam, name)
	}
	return id, nil
}
