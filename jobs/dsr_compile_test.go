package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kunal9797/artissales-sub001/internal/dsr"
)

type stubRoster struct {
	ids []string
	err error
}

func (s *stubRoster) ActiveRepIDs(ctx context.Context) ([]string, error) {
	return s.ids, s.err
}

type stubAggregator struct {
	failFor map[string]error
	dates   []string
}

func (s *stubAggregator) CompileDailySummary(ctx context.Context, userID, date string) (*dsr.DailySummary, error) {
	s.dates = append(s.dates, date)
	if err, ok := s.failFor[userID]; ok {
		return nil, err
	}
	return &dsr.DailySummary{
		UserID:               userID,
		Date:                 date,
		VisitIDs:             []string{"v-" + userID},
		SheetsSalesByCatalog: map[string]int{},
		ExpensesByCategory:   map[string]decimal.Decimal{},
	}, nil
}

type stubWriter struct {
	saved    []string
	skipFor  map[string]bool
	writeErr map[string]error
}

func (s *stubWriter) SaveReport(ctx context.Context, summary *dsr.DailySummary) (bool, error) {
	if err, ok := s.writeErr[summary.UserID]; ok {
		return false, err
	}
	if s.skipFor[summary.UserID] {
		return false, nil
	}
	s.saved = append(s.saved, summary.UserID)
	return true, nil
}

func TestDSRCompilePerRepFaultIsolation(t *testing.T) {
	roster := &stubRoster{ids: []string{"repA", "repB", "repC"}}
	agg := &stubAggregator{failFor: map[string]error{"repB": errors.New("aggregation blew up")}}
	writer := &stubWriter{}
	job := NewDSRCompileJob(roster, agg, writer, nil, nil)

	task, err := NewDSRCompileTask(DSRCompilePayload{Date: "2025-03-14"})
	require.NoError(t, err)

	// Rep B's failure must not abort the batch: A and C are still written.
	err = job.Handle(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, []string{"repA", "repC"}, writer.saved)
}

func TestDSRCompileRosterFailureFailsRun(t *testing.T) {
	roster := &stubRoster{err: errors.New("directory unavailable")}
	job := NewDSRCompileJob(roster, &stubAggregator{}, &stubWriter{}, nil, nil)

	task, err := NewDSRCompileTask(DSRCompilePayload{})
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, roster.err)
}

func TestDSRCompileDefaultsToTodayIST(t *testing.T) {
	roster := &stubRoster{ids: []string{"repA"}}
	agg := &stubAggregator{}
	job := NewDSRCompileJob(roster, agg, &stubWriter{}, nil, nil)
	// 21:00 UTC on March 14 is already March 15 in IST.
	job.clock = func() time.Time { return time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC) }

	task, err := NewDSRCompileTask(DSRCompilePayload{})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, []string{"2025-03-15"}, agg.dates)
}

func TestDSRCompileWriteErrorCountsAsRepFailure(t *testing.T) {
	roster := &stubRoster{ids: []string{"repA", "repB"}}
	writer := &stubWriter{writeErr: map[string]error{"repA": errors.New("merge failed")}}
	job := NewDSRCompileJob(roster, &stubAggregator{}, writer, nil, nil)

	task, err := NewDSRCompileTask(DSRCompilePayload{Date: "2025-03-14"})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, []string{"repB"}, writer.saved)
}

func TestNewDSRCompileTaskRejectsBadDate(t *testing.T) {
	_, err := NewDSRCompileTask(DSRCompilePayload{Date: "15-03-2025"})
	assert.Error(t, err)

	_, err = NewDSRCompileTask(DSRCompilePayload{Date: "2025-03-15"})
	assert.NoError(t, err)
}
