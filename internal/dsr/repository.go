package dsr

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// Repository persists daily sales reports in the dsrReports collection.
type Repository struct {
	reports *mongo.Collection
}

// NewRepository binds the repository to the dsrReports collection.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{reports: db.Collection("dsrReports")}
}

// MergeReport upserts the report under its deterministic id. Only the
// compiler-owned fields are in the $set document; review fields survive
// re-compilation untouched.
func (r *Repository) MergeReport(ctx context.Context, report *Report) error {
	set := bson.M{
		"userId":          report.UserID,
		"date":            report.Date,
		"totalVisits":     report.TotalVisits,
		"visitIds":        report.VisitIDs,
		"wasActive":       report.WasActive,
		"activityCount":   report.ActivityCount,
		"sheetsSales":     report.SheetsSales,
		"totalSheetsSold": report.TotalSheetsSold,
		"expenses":        report.Expenses,
		"totalExpenses":   report.TotalExpenses,
		"status":          report.Status,
		"generatedAt":     report.GeneratedAt,
	}
	if report.CheckInAt != nil {
		set["checkInAt"] = report.CheckInAt
	}
	if report.CheckOutAt != nil {
		set["checkOutAt"] = report.CheckOutAt
	}

	update := bson.M{"$set": set}
	if report.CheckInAt == nil {
		update["$unset"] = bson.M{"checkInAt": ""}
	}
	if report.CheckOutAt == nil {
		unset, ok := update["$unset"].(bson.M)
		if !ok {
			unset = bson.M{}
			update["$unset"] = unset
		}
		unset["checkOutAt"] = ""
	}

	_, err := r.reports.UpdateOne(ctx,
		bson.M{"_id": report.ID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("dsr: merge report %s: %w", report.ID, err)
	}
	return nil
}

// GetReport loads one report by rep and date.
func (r *Repository) GetReport(ctx context.Context, userID, date string) (*Report, error) {
	var report Report
	err := r.reports.FindOne(ctx, bson.M{"_id": ReportID(userID, date)}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dsr: get report %s_%s: %w", userID, date, err)
	}
	return &report, nil
}
