package activity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceType distinguishes check actions.
type AttendanceType string

const (
	CheckIn  AttendanceType = "IN"
	CheckOut AttendanceType = "OUT"
)

// AttendanceEvent is one check action. A rep may log several per day, for
// example after an auto-checkout followed by a re-check-in.
type AttendanceEvent struct {
	ID        string         `bson:"_id,omitempty"`
	UserID    string         `bson:"userId"`
	Type      AttendanceType `bson:"type"`
	Timestamp time.Time      `bson:"timestamp"`
}

// VisitEvent records a rep visiting an account.
type VisitEvent struct {
	ID          string    `bson:"_id,omitempty"`
	UserID      string    `bson:"userId"`
	AccountID   string    `bson:"accountId"`
	AccountName string    `bson:"accountName"`
	AccountType string    `bson:"accountType"`
	Timestamp   time.Time `bson:"timestamp"`
	Purpose     string    `bson:"purpose,omitempty"`
	Photos      []string  `bson:"photos,omitempty"`
}

// SheetsSaleEvent records sheets sold from one catalog. Date is a calendar
// string, not a timestamp; it is matched by exact string equality.
type SheetsSaleEvent struct {
	ID          string `bson:"_id,omitempty"`
	UserID      string `bson:"userId"`
	Date        string `bson:"date"`
	Catalog     string `bson:"catalog"`
	SheetsCount int    `bson:"sheetsCount"`
	Verified    bool   `bson:"verified"`
}

// ExpenseStatus tracks the review state of an expense report.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// ExpenseItem is one line of an expense report.
type ExpenseItem struct {
	Amount      decimal.Decimal
	Category    string
	Description string
}

// ExpenseReport groups a day's expense items for one rep. Date is a calendar
// string, like sheet sales.
type ExpenseReport struct {
	ID          string
	UserID      string
	Date        string
	Items       []ExpenseItem
	TotalAmount decimal.Decimal
	Status      ExpenseStatus
}
