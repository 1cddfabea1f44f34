package targets

import (
	"context"
	"fmt"
	"time"
)

// Repository is the targets persistence contract used by the renewer.
// CreateIfAbsent must be a store-native conditional insert: a target that
// already exists at its id is skipped atomically, never overwritten.
type Repository interface {
	ListAutoRenew(ctx context.Context, month string) ([]Target, error)
	CreateIfAbsent(ctx context.Context, targets []Target) (created, skipped int, err error)
}

// RenewResult summarises one renewal run.
type RenewResult struct {
	Candidates int
	Created    int
	Skipped    int
}

// Renewer copies auto-renew targets from one month into the next.
type Renewer struct {
	repo  Repository
	clock func() time.Time
}

// NewRenewer constructs a Renewer.
func NewRenewer(repo Repository) *Renewer {
	return &Renewer{repo: repo, clock: time.Now}
}

// WithClock overrides the timestamp source.
func (r *Renewer) WithClock(clock func() time.Time) *Renewer {
	if clock != nil {
		r.clock = clock
	}
	return r
}

// RenewMonth clones every autoRenew target of previousMonth into
// currentMonth. Targets already present for currentMonth are skipped, so a
// manager's manually set target always wins and a retried run is safe. The
// whole batch commits together; any failure beyond duplicate ids fails the
// run so the scheduler can retry it.
func (r *Renewer) RenewMonth(ctx context.Context, currentMonth, previousMonth string) (RenewResult, error) {
	sources, err := r.repo.ListAutoRenew(ctx, previousMonth)
	if err != nil {
		return RenewResult{}, fmt.Errorf("targets: list auto-renew for %s: %w", previousMonth, err)
	}
	if len(sources) == 0 {
		return RenewResult{}, nil
	}

	now := r.clock()
	clones := make([]Target, 0, len(sources))
	for i := range sources {
		clones = append(clones, CloneForMonth(sources[i], currentMonth, now))
	}

	created, skipped, err := r.repo.CreateIfAbsent(ctx, clones)
	if err != nil {
		return RenewResult{}, fmt.Errorf("targets: renew batch for %s: %w", currentMonth, err)
	}
	return RenewResult{Candidates: len(sources), Created: created, Skipped: skipped}, nil
}

// CloneForMonth copies a target forward into the given month. Attribution is
// preserved from the source target, not reset to a system identity, and the
// clone points back at its source via SourceTargetID.
func CloneForMonth(source Target, month string, now time.Time) Target {
	sourceID := source.ID
	return Target{
		ID:                   TargetID(source.UserID, month),
		UserID:               source.UserID,
		Month:                month,
		TargetsByCatalog:     copyTargets(source.TargetsByCatalog),
		TargetsByAccountType: copyTargets(source.TargetsByAccountType),
		AutoRenew:            source.AutoRenew,
		SourceTargetID:       &sourceID,
		CreatedBy:            source.CreatedBy,
		CreatedByName:        source.CreatedByName,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func copyTargets(src map[string]*int) map[string]*int {
	if src == nil {
		return nil
	}
	dst := make(map[string]*int, len(src))
	for key, value := range src {
		if value == nil {
			dst[key] = nil
			continue
		}
		v := *value
		dst[key] = &v
	}
	return dst
}
