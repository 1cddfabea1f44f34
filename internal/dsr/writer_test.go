package dsr

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReportStore struct {
	merged   []*Report
	mergeErr error
}

func (m *mockReportStore) MergeReport(ctx context.Context, report *Report) error {
	if m.mergeErr != nil {
		return m.mergeErr
	}
	m.merged = append(m.merged, report)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func activeSummary() *DailySummary {
	checkIn := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return &DailySummary{
		UserID:    "u1",
		Date:      "2025-03-14",
		CheckInAt: &checkIn,
		VisitIDs:  []string{"v1", "v2"},
		SheetsSalesByCatalog: map[string]int{
			"Artvio":   10,
			"Woodrica": 5,
		},
		ExpensesByCategory: map[string]decimal.Decimal{
			"travel": decimal.NewFromInt(250),
		},
	}
}

func TestSaveReportSkipsInactiveDay(t *testing.T) {
	store := &mockReportStore{}
	writer := NewWriter(store)

	wrote, err := writer.SaveReport(context.Background(), &DailySummary{
		UserID:               "u1",
		Date:                 "2025-03-14",
		VisitIDs:             []string{},
		SheetsSalesByCatalog: map[string]int{},
		ExpensesByCategory:   map[string]decimal.Decimal{},
	})
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Empty(t, store.merged, "no document for a rep with zero activity")
}

func TestSaveReportAutoApprovalThreshold(t *testing.T) {
	store := &mockReportStore{}
	writer := NewWriter(store)

	// Visits only, no monetary stakes: approved on the spot.
	wrote, err := writer.SaveReport(context.Background(), &DailySummary{
		UserID:               "u1",
		Date:                 "2025-03-14",
		VisitIDs:             []string{"v1"},
		SheetsSalesByCatalog: map[string]int{},
		ExpensesByCategory:   map[string]decimal.Decimal{},
	})
	require.NoError(t, err)
	require.True(t, wrote)
	assert.Equal(t, StatusApproved, store.merged[0].Status)

	// A single sheet sold flips the day to pending review.
	wrote, err = writer.SaveReport(context.Background(), &DailySummary{
		UserID:               "u1",
		Date:                 "2025-03-15",
		VisitIDs:             []string{"v1"},
		SheetsSalesByCatalog: map[string]int{"Artvio": 1},
		ExpensesByCategory:   map[string]decimal.Decimal{},
	})
	require.NoError(t, err)
	require.True(t, wrote)
	assert.Equal(t, StatusPending, store.merged[1].Status)
}

func TestSaveReportCheckInOnlyStillWrites(t *testing.T) {
	store := &mockReportStore{}
	writer := NewWriter(store)

	checkIn := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	wrote, err := writer.SaveReport(context.Background(), &DailySummary{
		UserID:               "u1",
		Date:                 "2025-03-14",
		CheckInAt:            &checkIn,
		VisitIDs:             []string{},
		SheetsSalesByCatalog: map[string]int{},
		ExpensesByCategory:   map[string]decimal.Decimal{},
	})
	require.NoError(t, err)
	require.True(t, wrote)

	report := store.merged[0]
	assert.False(t, report.WasActive)
	assert.Equal(t, StatusApproved, report.Status)
	assert.Equal(t, 0, report.ActivityCount)
}

func TestSaveReportIdempotentContent(t *testing.T) {
	store := &mockReportStore{}
	writer := NewWriter(store).WithClock(fixedClock(time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC)))

	_, err := writer.SaveReport(context.Background(), activeSummary())
	require.NoError(t, err)

	writer.WithClock(fixedClock(time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)))
	_, err = writer.SaveReport(context.Background(), activeSummary())
	require.NoError(t, err)

	require.Len(t, store.merged, 2)
	first, second := *store.merged[0], *store.merged[1]
	assert.NotEqual(t, first.GeneratedAt, second.GeneratedAt)

	// Everything except GeneratedAt is identical across runs.
	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}
	assert.Equal(t, first, second)
}

func TestBuildReportTotalsAndCounts(t *testing.T) {
	report := BuildReport(activeSummary(), time.Now())
	require.NotNil(t, report)

	assert.Equal(t, "u1_2025-03-14", report.ID)
	assert.Equal(t, 15, report.TotalSheetsSold)
	assert.InDelta(t, 250.0, report.TotalExpenses, 0.0001)
	assert.Equal(t, 2, report.TotalVisits)
	// 2 visits + 2 catalogs + 1 expense category.
	assert.Equal(t, 5, report.ActivityCount)
	assert.True(t, report.WasActive)
	assert.Equal(t, []CatalogSales{
		{Catalog: "Artvio", TotalSheets: 10},
		{Catalog: "Woodrica", TotalSheets: 5},
	}, report.SheetsSales)
	assert.Nil(t, report.ReviewedBy, "review fields are never set by the compiler")
}
