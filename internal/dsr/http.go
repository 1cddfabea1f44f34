package dsr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kunal9797/artissales-sub001/internal/platform/httpx"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// ReportGetter loads a single compiled report.
type ReportGetter interface {
	GetReport(ctx context.Context, userID, date string) (*Report, error)
}

// Handler exposes read-only report lookups on the ops surface, so an operator
// can verify what a compile run produced for a given rep and day.
type Handler struct {
	reports ReportGetter
}

// NewHandler constructs the read-only DSR handler.
func NewHandler(reports ReportGetter) *Handler {
	return &Handler{reports: reports}
}

// MountRoutes attaches report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{userID}/{date}", h.getReport)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	date := chi.URLParam(r, "date")
	if !shared.ValidDate(date) {
		httpx.RespondError(w, fmt.Errorf("%w: %q", shared.ErrInvalidDate, date))
		return
	}
	report, err := h.reports.GetReport(r.Context(), userID, date)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
