package targets

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kunal9797/artissales-sub001/internal/platform/httpx"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// TargetGetter loads one stored target.
type TargetGetter interface {
	GetTarget(ctx context.Context, userID, month string) (*Target, error)
}

// ProgressResponse is the computed progress for one rep and month.
type ProgressResponse struct {
	UserID        string     `json:"userId"`
	Month         string     `json:"month"`
	SheetProgress []Progress `json:"sheetProgress"`
	VisitProgress []Progress `json:"visitProgress"`
}

// Handler exposes read-only target progress on the ops surface.
type Handler struct {
	targets    TargetGetter
	calculator *Calculator
}

// NewHandler constructs the read-only targets handler.
func NewHandler(targets TargetGetter, calculator *Calculator) *Handler {
	return &Handler{targets: targets, calculator: calculator}
}

// MountRoutes attaches target routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{userID}/{month}/progress", h.getProgress)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	month := chi.URLParam(r, "month")
	if !shared.ValidMonth(month) {
		httpx.RespondError(w, fmt.Errorf("%w: %q", shared.ErrInvalidMonth, month))
		return
	}

	target, err := h.targets.GetTarget(r.Context(), userID, month)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	sheets, err := h.calculator.SheetProgress(r.Context(), userID, month, target.TargetsByCatalog)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	visits, err := h.calculator.VisitProgress(r.Context(), userID, month, target.TargetsByAccountType)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ProgressResponse{
		UserID:        userID,
		Month:         month,
		SheetProgress: sheets,
		VisitProgress: visits,
	})
}
