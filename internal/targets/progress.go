package targets

import (
	"context"
	"fmt"
	"math"

	"github.com/Kunal9797/artissales-sub001/internal/activity"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// Calculator computes achieved-vs-target progress for one rep and month.
// Pure reads over the activity store.
type Calculator struct {
	store activity.Reader
}

// NewCalculator wires the calculator to an activity reader.
func NewCalculator(store activity.Reader) *Calculator {
	return &Calculator{store: store}
}

// catalogTally accumulates sheets for the known catalogs only. Unlike the DSR
// aggregator's open map, unknown catalogs are dropped here: a target can only
// exist for a known catalog, so anything else has no row to contribute to.
type catalogTally struct {
	artvio   int
	woodrica int
	artis    int
}

func (t *catalogTally) add(catalog string, sheets int) {
	switch catalog {
	case CatalogArtvio:
		t.artvio += sheets
	case CatalogWoodrica:
		t.woodrica += sheets
	case CatalogArtis:
		t.artis += sheets
	}
}

func (t *catalogTally) achieved(catalog string) int {
	switch catalog {
	case CatalogArtvio:
		return t.artvio
	case CatalogWoodrica:
		return t.woodrica
	case CatalogArtis:
		return t.artis
	}
	return 0
}

// accountTally accumulates visit counts for the known account types only.
type accountTally struct {
	distributor int
	dealer      int
	architect   int
	oem         int
	retailer    int
}

func (t *accountTally) add(accountType string) {
	switch accountType {
	case AccountDistributor:
		t.distributor++
	case AccountDealer:
		t.dealer++
	case AccountArchitect:
		t.architect++
	case AccountOEM:
		t.oem++
	case AccountRetailer:
		t.retailer++
	}
}

func (t *accountTally) achieved(accountType string) int {
	switch accountType {
	case AccountDistributor:
		return t.distributor
	case AccountDealer:
		return t.dealer
	case AccountArchitect:
		return t.architect
	case AccountOEM:
		return t.oem
	case AccountRetailer:
		return t.retailer
	}
	return 0
}

// SheetProgress sums the month's verified-or-not sheet sales per known
// catalog and compares them against the per-catalog targets. Only dimensions
// with a positive target produce a row.
func (c *Calculator) SheetProgress(ctx context.Context, userID, month string, targetsByCatalog map[string]*int) ([]Progress, error) {
	first, last, err := shared.MonthDayRange(month)
	if err != nil {
		return nil, err
	}

	sales, err := c.store.SheetsSalesInRange(ctx, userID, first, last)
	if err != nil {
		return nil, fmt.Errorf("targets: sheet progress for %s in %s: %w", userID, month, err)
	}

	var tally catalogTally
	for _, sale := range sales {
		tally.add(sale.Catalog, sale.SheetsCount)
	}

	rows := make([]Progress, 0, len(KnownCatalogs()))
	for _, catalog := range KnownCatalogs() {
		target, ok := dimensionTarget(targetsByCatalog, catalog)
		if !ok {
			continue
		}
		rows = append(rows, progressRow(catalog, target, tally.achieved(catalog)))
	}
	return rows, nil
}

// VisitProgress counts the month's visits per known account type and compares
// them against the per-type targets.
func (c *Calculator) VisitProgress(ctx context.Context, userID, month string, targetsByAccountType map[string]*int) ([]Progress, error) {
	start, end, err := shared.MonthWindow(month)
	if err != nil {
		return nil, err
	}

	visits, err := c.store.VisitsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("targets: visit progress for %s in %s: %w", userID, month, err)
	}

	var tally accountTally
	for _, visit := range visits {
		tally.add(visit.AccountType)
	}

	rows := make([]Progress, 0, len(KnownAccountTypes()))
	for _, accountType := range KnownAccountTypes() {
		target, ok := dimensionTarget(targetsByAccountType, accountType)
		if !ok {
			continue
		}
		rows = append(rows, progressRow(accountType, target, tally.achieved(accountType)))
	}
	return rows, nil
}

// dimensionTarget reports the target for a dimension and whether one is set.
// Unset and non-positive targets both mean "no row".
func dimensionTarget(targets map[string]*int, dimension string) (int, bool) {
	if targets == nil {
		return 0, false
	}
	value, ok := targets[dimension]
	if !ok || value == nil || *value <= 0 {
		return 0, false
	}
	return *value, true
}

func progressRow(dimension string, target, achieved int) Progress {
	percentage := 0
	if target > 0 {
		percentage = int(math.Round(float64(achieved) / float64(target) * 100))
	}
	return Progress{
		Dimension:  dimension,
		Target:     target,
		Achieved:   achieved,
		Percentage: percentage,
	}
}
