package dsr

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Kunal9797/artissales-sub001/internal/activity"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// Aggregator builds a DailySummary for one rep and one calendar date from the
// four activity collections. Pure read; no side effects.
type Aggregator struct {
	store activity.Reader
}

// NewAggregator wires the aggregator to an activity reader.
func NewAggregator(store activity.Reader) *Aggregator {
	return &Aggregator{store: store}
}

// CompileDailySummary scans the rep's activity for the given YYYY-MM-DD date.
// Attendance and visits are read through the IST day window; sheet sales and
// expenses by exact calendar-string match. Unknown catalog and category keys
// accumulate like any other; filtering to known values is a presentation
// concern, not an aggregation one.
func (a *Aggregator) CompileDailySummary(ctx context.Context, userID, date string) (*DailySummary, error) {
	start, end, err := shared.DayWindow(date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		UserID:               userID,
		Date:                 date,
		VisitIDs:             []string{},
		SheetsSalesByCatalog: map[string]int{},
		ExpensesByCategory:   map[string]decimal.Decimal{},
	}

	events, err := a.store.AttendanceBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("dsr: aggregate attendance for %s on %s: %w", userID, date, err)
	}
	for i := range events {
		event := events[i]
		switch event.Type {
		case activity.CheckIn:
			// Earliest arrival wins; later re-check-ins are ignored.
			if summary.CheckInAt == nil {
				ts := event.Timestamp
				summary.CheckInAt = &ts
			}
		case activity.CheckOut:
			// Latest departure wins; every checkout overwrites the previous.
			ts := event.Timestamp
			summary.CheckOutAt = &ts
		}
	}

	visits, err := a.store.VisitsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("dsr: aggregate visits for %s on %s: %w", userID, date, err)
	}
	for _, visit := range visits {
		summary.VisitIDs = append(summary.VisitIDs, visit.ID)
	}

	sales, err := a.store.SheetsSalesOn(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("dsr: aggregate sheet sales for %s on %s: %w", userID, date, err)
	}
	for _, sale := range sales {
		summary.SheetsSalesByCatalog[sale.Catalog] += sale.SheetsCount
	}

	expenses, err := a.store.ExpensesOn(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("dsr: aggregate expenses for %s on %s: %w", userID, date, err)
	}
	for _, report := range expenses {
		for _, item := range report.Items {
			summary.ExpensesByCategory[item.Category] = summary.ExpensesByCategory[item.Category].Add(item.Amount)
		}
	}

	return summary, nil
}
