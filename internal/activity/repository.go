package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reader exposes the read side of the four activity collections. Attendance
// and visits are addressed by absolute timestamp window; sheet sales and
// expenses by exact calendar-string equality. Keeping both addressing modes
// on one interface keeps the dual-keying invariant in one place.
type Reader interface {
	AttendanceBetween(ctx context.Context, userID string, start, end time.Time) ([]AttendanceEvent, error)
	VisitsBetween(ctx context.Context, userID string, start, end time.Time) ([]VisitEvent, error)
	SheetsSalesOn(ctx context.Context, userID, date string) ([]SheetsSaleEvent, error)
	SheetsSalesInRange(ctx context.Context, userID, fromDate, toDate string) ([]SheetsSaleEvent, error)
	ExpensesOn(ctx context.Context, userID, date string) ([]ExpenseReport, error)
}

// Store reads the activity collections from MongoDB.
type Store struct {
	attendance  *mongo.Collection
	visits      *mongo.Collection
	sheetsSales *mongo.Collection
	expenses    *mongo.Collection
}

// NewStore binds the store to the activity collections.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		attendance:  db.Collection("attendance"),
		visits:      db.Collection("visits"),
		sheetsSales: db.Collection("sheetsSales"),
		expenses:    db.Collection("expenses"),
	}
}

// AttendanceBetween returns the rep's attendance events inside the window,
// ordered by timestamp ascending.
func (s *Store) AttendanceBetween(ctx context.Context, userID string, start, end time.Time) ([]AttendanceEvent, error) {
	filter := bson.M{
		"userId":    userID,
		"timestamp": bson.M{"$gte": start, "$lte": end},
	}
	cursor, err := s.attendance.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("activity: attendance query: %w", err)
	}
	defer cursor.Close(ctx)

	var events []AttendanceEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("activity: attendance decode: %w", err)
	}
	return events, nil
}

// VisitsBetween returns the rep's visits inside the window.
func (s *Store) VisitsBetween(ctx context.Context, userID string, start, end time.Time) ([]VisitEvent, error) {
	filter := bson.M{
		"userId":    userID,
		"timestamp": bson.M{"$gte": start, "$lte": end},
	}
	cursor, err := s.visits.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("activity: visits query: %w", err)
	}
	defer cursor.Close(ctx)

	var visits []VisitEvent
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("activity: visits decode: %w", err)
	}
	return visits, nil
}

// SheetsSalesOn returns sales logged under exactly the given calendar date.
func (s *Store) SheetsSalesOn(ctx context.Context, userID, date string) ([]SheetsSaleEvent, error) {
	return s.findSheetsSales(ctx, bson.M{"userId": userID, "date": date})
}

// SheetsSalesInRange returns sales whose calendar date falls in the inclusive
// string range. YYYY-MM-DD sorts lexicographically, so a string range is a
// date range.
func (s *Store) SheetsSalesInRange(ctx context.Context, userID, fromDate, toDate string) ([]SheetsSaleEvent, error) {
	return s.findSheetsSales(ctx, bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": fromDate, "$lte": toDate},
	})
}

func (s *Store) findSheetsSales(ctx context.Context, filter bson.M) ([]SheetsSaleEvent, error) {
	cursor, err := s.sheetsSales.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("activity: sheets sales query: %w", err)
	}
	defer cursor.Close(ctx)

	var sales []SheetsSaleEvent
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("activity: sheets sales decode: %w", err)
	}
	return sales, nil
}

// expenseItemDoc and expenseReportDoc are the stored shapes. Amounts arrive
// from the mobile client as bson doubles; they are converted to decimals at
// this boundary so all arithmetic upstream is exact.
type expenseItemDoc struct {
	Amount      float64 `bson:"amount"`
	Category    string  `bson:"category"`
	Description string  `bson:"description,omitempty"`
}

type expenseReportDoc struct {
	ID          string           `bson:"_id,omitempty"`
	UserID      string           `bson:"userId"`
	Date        string           `bson:"date"`
	Items       []expenseItemDoc `bson:"items"`
	TotalAmount float64          `bson:"totalAmount"`
	Status      string           `bson:"status"`
}

// ExpensesOn returns expense reports logged under exactly the given date.
func (s *Store) ExpensesOn(ctx context.Context, userID, date string) ([]ExpenseReport, error) {
	cursor, err := s.expenses.Find(ctx, bson.M{"userId": userID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("activity: expenses query: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []expenseReportDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("activity: expenses decode: %w", err)
	}

	reports := make([]ExpenseReport, 0, len(docs))
	for _, doc := range docs {
		report := ExpenseReport{
			ID:          doc.ID,
			UserID:      doc.UserID,
			Date:        doc.Date,
			Items:       make([]ExpenseItem, 0, len(doc.Items)),
			TotalAmount: decimal.NewFromFloat(doc.TotalAmount),
			Status:      ExpenseStatus(doc.Status),
		}
		for _, item := range doc.Items {
			report.Items = append(report.Items, ExpenseItem{
				Amount:      decimal.NewFromFloat(item.Amount),
				Category:    item.Category,
				Description: item.Description,
			})
		}
		reports = append(reports, report)
	}
	return reports, nil
}
