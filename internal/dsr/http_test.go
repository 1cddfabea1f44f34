package dsr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

type stubReportGetter struct {
	report *Report
	err    error
}

func (s *stubReportGetter) GetReport(ctx context.Context, userID, date string) (*Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newReportRouter(getter ReportGetter) http.Handler {
	r := chi.NewRouter()
	NewHandler(getter).MountRoutes(r)
	return r
}

func TestGetReportReturnsDocument(t *testing.T) {
	generated := time.Date(2025, 3, 14, 17, 5, 0, 0, time.UTC)
	getter := &stubReportGetter{report: &Report{
		ID:          ReportID("u1", "2025-03-14"),
		UserID:      "u1",
		Date:        "2025-03-14",
		TotalVisits: 2,
		Status:      StatusApproved,
		GeneratedAt: generated,
	}}

	rec := httptest.NewRecorder()
	newReportRouter(getter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/u1/2025-03-14", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "u1_2025-03-14", got.ID)
	assert.Equal(t, 2, got.TotalVisits)
	assert.Equal(t, StatusApproved, got.Status)
}

func TestGetReportNotFound(t *testing.T) {
	getter := &stubReportGetter{err: shared.ErrNotFound}

	rec := httptest.NewRecorder()
	newReportRouter(getter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/u1/2025-03-14", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReportRejectsMalformedDate(t *testing.T) {
	getter := &stubReportGetter{report: &Report{}}

	rec := httptest.NewRecorder()
	newReportRouter(getter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/u1/14-03-2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReportStoreErrorIs500(t *testing.T) {
	getter := &stubReportGetter{err: errors.New("mongo unavailable")}

	rec := httptest.NewRecorder()
	newReportRouter(getter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/u1/2025-03-14", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
