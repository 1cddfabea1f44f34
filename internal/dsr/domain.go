package dsr

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus is the review state of a daily sales report.
type ReportStatus string

const (
	StatusApproved      ReportStatus = "approved"
	StatusPending       ReportStatus = "pending"
	StatusNeedsRevision ReportStatus = "needs_revision"
)

// DailySummary is the in-memory aggregate of one rep's activity on one
// calendar day. It lives only inside a single compiler run and is never
// persisted directly.
//
// The two accumulator maps are deliberately open-keyed: unknown catalogs and
// expense categories still count here. The targets package uses a fixed-key
// tally instead; the two behaviours must not be merged into a shared helper.
type DailySummary struct {
	UserID               string
	Date                 string
	CheckInAt            *time.Time
	CheckOutAt           *time.Time
	VisitIDs             []string
	SheetsSalesByCatalog map[string]int
	ExpensesByCategory   map[string]decimal.Decimal
}

// CatalogSales is one per-catalog row of a persisted report.
type CatalogSales struct {
	Catalog     string `bson:"catalog" json:"catalog"`
	TotalSheets int    `bson:"totalSheets" json:"totalSheets"`
}

// CategoryExpense is one per-category row of a persisted report. Amounts are
// stored as doubles for parity with the documents the mobile client writes.
type CategoryExpense struct {
	Category    string  `bson:"category" json:"category"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
}

// Report is the persisted daily sales report, one per rep per day, keyed
// {userId}_{date}. The compiler owns every field except the review fields,
// which a manager-facing endpoint sets and the compiler never touches.
type Report struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"userId" json:"userId"`
	Date            string          `bson:"date" json:"date"`
	CheckInAt       *time.Time      `bson:"checkInAt,omitempty" json:"checkInAt,omitempty"`
	CheckOutAt      *time.Time      `bson:"checkOutAt,omitempty" json:"checkOutAt,omitempty"`
	TotalVisits     int             `bson:"totalVisits" json:"totalVisits"`
	VisitIDs        []string        `bson:"visitIds" json:"visitIds"`
	WasActive       bool            `bson:"wasActive" json:"wasActive"`
	ActivityCount   int             `bson:"activityCount" json:"activityCount"`
	SheetsSales     []CatalogSales  `bson:"sheetsSales" json:"sheetsSales"`
	TotalSheetsSold int             `bson:"totalSheetsSold" json:"totalSheetsSold"`
	Expenses        []CategoryExpense `bson:"expenses" json:"expenses"`
	TotalExpenses   float64         `bson:"totalExpenses" json:"totalExpenses"`
	Status          ReportStatus    `bson:"status" json:"status"`
	ReviewedBy      *string         `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time      `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ManagerComments *string         `bson:"managerComments,omitempty" json:"managerComments,omitempty"`
	GeneratedAt     time.Time       `bson:"generatedAt" json:"generatedAt"`
}

// ReportID builds the deterministic document id for a rep and date.
func ReportID(userID, date string) string {
	return userID + "_" + date
}
