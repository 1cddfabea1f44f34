package dsr

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ReportStore persists reports with merge semantics: fields absent from the
// write are left untouched on an existing document.
type ReportStore interface {
	MergeReport(ctx context.Context, report *Report) error
}

// Writer turns a DailySummary into a persisted report, applying the
// skip-if-inactive and auto-approval rules.
type Writer struct {
	reports ReportStore
	clock   func() time.Time
}

// NewWriter constructs a Writer. The clock is injectable for tests.
func NewWriter(reports ReportStore) *Writer {
	return &Writer{
		reports: reports,
		clock:   time.Now,
	}
}

// WithClock overrides the generation timestamp source.
func (w *Writer) WithClock(clock func() time.Time) *Writer {
	if clock != nil {
		w.clock = clock
	}
	return w
}

// SaveReport upserts the report for the summary's rep and date. It returns
// false without writing when the rep had no activity at all: report existence
// itself signals "this person did something today". Re-running with an
// unchanged summary rewrites identical content (only GeneratedAt advances),
// so a full compiler re-run is safe.
func (w *Writer) SaveReport(ctx context.Context, summary *DailySummary) (bool, error) {
	report := BuildReport(summary, w.clock())
	if report == nil {
		return false, nil
	}
	if err := w.reports.MergeReport(ctx, report); err != nil {
		return false, fmt.Errorf("dsr: save report %s: %w", report.ID, err)
	}
	return true, nil
}

// BuildReport applies the business rules to a summary. It returns nil when
// the skip-write rule holds. Rows are sorted by key so repeated builds of the
// same summary produce identical documents.
func BuildReport(summary *DailySummary, generatedAt time.Time) *Report {
	totalSheets := 0
	sheetsRows := make([]CatalogSales, 0, len(summary.SheetsSalesByCatalog))
	for catalog, count := range summary.SheetsSalesByCatalog {
		totalSheets += count
		sheetsRows = append(sheetsRows, CatalogSales{Catalog: catalog, TotalSheets: count})
	}
	sort.Slice(sheetsRows, func(i, j int) bool { return sheetsRows[i].Catalog < sheetsRows[j].Catalog })

	totalExpenses := decimal.Zero
	expenseRows := make([]CategoryExpense, 0, len(summary.ExpensesByCategory))
	for category, amount := range summary.ExpensesByCategory {
		totalExpenses = totalExpenses.Add(amount)
		expenseRows = append(expenseRows, CategoryExpense{Category: category, TotalAmount: amount.InexactFloat64()})
	}
	sort.Slice(expenseRows, func(i, j int) bool { return expenseRows[i].Category < expenseRows[j].Category })

	hasMoney := totalSheets > 0 || totalExpenses.IsPositive()
	wasActive := len(summary.VisitIDs) > 0 || hasMoney

	if summary.CheckInAt == nil && summary.CheckOutAt == nil && !wasActive {
		return nil
	}

	// Days with monetary stakes wait for manager review; attendance-and-visits
	// days are approved on the spot.
	status := StatusApproved
	if hasMoney {
		status = StatusPending
	}

	return &Report{
		ID:              ReportID(summary.UserID, summary.Date),
		UserID:          summary.UserID,
		Date:            summary.Date,
		CheckInAt:       summary.CheckInAt,
		CheckOutAt:      summary.CheckOutAt,
		TotalVisits:     len(summary.VisitIDs),
		VisitIDs:        summary.VisitIDs,
		WasActive:       wasActive,
		ActivityCount:   len(summary.VisitIDs) + len(sheetsRows) + len(expenseRows),
		SheetsSales:     sheetsRows,
		TotalSheetsSold: totalSheets,
		Expenses:        expenseRows,
		TotalExpenses:   totalExpenses.InexactFloat64(),
		Status:          status,
		GeneratedAt:     generatedAt,
	}
}
