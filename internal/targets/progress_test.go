package targets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kunal9797/artissales-sub001/internal/activity"
)

type mockActivityStore struct {
	sales  []activity.SheetsSaleEvent
	visits []activity.VisitEvent

	salesFrom string
	salesTo   string
}

func (m *mockActivityStore) AttendanceBetween(ctx context.Context, userID string, start, end time.Time) ([]activity.AttendanceEvent, error) {
	return nil, nil
}

func (m *mockActivityStore) VisitsBetween(ctx context.Context, userID string, start, end time.Time) ([]activity.VisitEvent, error) {
	var out []activity.VisitEvent
	for _, visit := range m.visits {
		if visit.UserID == userID && !visit.Timestamp.Before(start) && !visit.Timestamp.After(end) {
			out = append(out, visit)
		}
	}
	return out, nil
}

func (m *mockActivityStore) SheetsSalesOn(ctx context.Context, userID, date string) ([]activity.SheetsSaleEvent, error) {
	return nil, nil
}

func (m *mockActivityStore) SheetsSalesInRange(ctx context.Context, userID, fromDate, toDate string) ([]activity.SheetsSaleEvent, error) {
	m.salesFrom, m.salesTo = fromDate, toDate
	var out []activity.SheetsSaleEvent
	for _, sale := range m.sales {
		if sale.UserID == userID && sale.Date >= fromDate && sale.Date <= toDate {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (m *mockActivityStore) ExpensesOn(ctx context.Context, userID, date string) ([]activity.ExpenseReport, error) {
	return nil, nil
}

func intPtr(v int) *int { return &v }

func TestSheetProgressOmitsUnsetDimensions(t *testing.T) {
	store := &mockActivityStore{
		sales: []activity.SheetsSaleEvent{
			{UserID: "u1", Date: "2025-03-05", Catalog: CatalogArtvio, SheetsCount: 25},
			{UserID: "u1", Date: "2025-03-20", Catalog: CatalogArtvio, SheetsCount: 15},
			{UserID: "u1", Date: "2025-03-21", Catalog: CatalogWoodrica, SheetsCount: 10},
		},
	}
	calc := NewCalculator(store)

	rows, err := calc.SheetProgress(context.Background(), "u1", "2025-03", map[string]*int{
		CatalogArtvio: intPtr(100),
		// No Woodrica target set: its 10 achieved sheets produce no row.
	})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, Progress{Dimension: CatalogArtvio, Target: 100, Achieved: 40, Percentage: 40}, rows[0])
	assert.Equal(t, "2025-03-01", store.salesFrom)
	assert.Equal(t, "2025-03-31", store.salesTo)
}

func TestSheetProgressDropsUnknownCatalogs(t *testing.T) {
	store := &mockActivityStore{
		sales: []activity.SheetsSaleEvent{
			{UserID: "u1", Date: "2025-03-05", Catalog: "DiscontinuedRange", SheetsCount: 500},
			{UserID: "u1", Date: "2025-03-06", Catalog: CatalogArtis, SheetsCount: 20},
		},
	}
	calc := NewCalculator(store)

	rows, err := calc.SheetProgress(context.Background(), "u1", "2025-03", map[string]*int{
		CatalogArtis: intPtr(40),
	})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 20, rows[0].Achieved, "unknown catalogs are dropped in the fixed-key path")
	assert.Equal(t, 50, rows[0].Percentage)
}

func TestSheetProgressPercentageRounds(t *testing.T) {
	store := &mockActivityStore{
		sales: []activity.SheetsSaleEvent{
			{UserID: "u1", Date: "2025-03-05", Catalog: CatalogArtvio, SheetsCount: 1},
		},
	}
	calc := NewCalculator(store)

	rows, err := calc.SheetProgress(context.Background(), "u1", "2025-03", map[string]*int{
		CatalogArtvio: intPtr(3),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 33, rows[0].Percentage)
}

func TestSheetProgressZeroTargetGuard(t *testing.T) {
	// Upstream validation rejects targets <= 0, so a stored zero should never
	// reach the calculator; when one does, it means "no target".
	store := &mockActivityStore{
		sales: []activity.SheetsSaleEvent{
			{UserID: "u1", Date: "2025-03-05", Catalog: CatalogArtvio, SheetsCount: 10},
		},
	}
	calc := NewCalculator(store)

	rows, err := calc.SheetProgress(context.Background(), "u1", "2025-03", map[string]*int{
		CatalogArtvio: intPtr(0),
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestVisitProgressCountsByAccountType(t *testing.T) {
	march := func(day, hour int) time.Time {
		return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
	}
	store := &mockActivityStore{
		visits: []activity.VisitEvent{
			{ID: "v1", UserID: "u1", AccountType: AccountDealer, Timestamp: march(3, 10)},
			{ID: "v2", UserID: "u1", AccountType: AccountDealer, Timestamp: march(12, 11)},
			{ID: "v3", UserID: "u1", AccountType: AccountArchitect, Timestamp: march(18, 9)},
			{ID: "v4", UserID: "u1", AccountType: "unknown-type", Timestamp: march(19, 9)},
			{ID: "v5", UserID: "u2", AccountType: AccountDealer, Timestamp: march(20, 9)},
		},
	}
	calc := NewCalculator(store)

	rows, err := calc.VisitProgress(context.Background(), "u1", "2025-03", map[string]*int{
		AccountDealer:    intPtr(10),
		AccountArchitect: intPtr(4),
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, Progress{Dimension: AccountDealer, Target: 10, Achieved: 2, Percentage: 20}, rows[0])
	assert.Equal(t, Progress{Dimension: AccountArchitect, Target: 4, Achieved: 1, Percentage: 25}, rows[1])
}

func TestProgressRejectsBadMonth(t *testing.T) {
	calc := NewCalculator(&mockActivityStore{})
	_, err := calc.SheetProgress(context.Background(), "u1", "March 2025", nil)
	assert.Error(t, err)
	_, err = calc.VisitProgress(context.Background(), "u1", "2025/03", nil)
	assert.Error(t, err)
}
