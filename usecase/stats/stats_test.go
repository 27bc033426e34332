package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/studybuddy/backend/domain"
)

type fakeStatsRepo struct {
	stats map[string]*domain.Stats
	err   error
}

func (f *fakeStatsRepo) Get(ctx context.Context, userID string) (*domain.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	stats, ok := f.stats[userID]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (f *fakeStatsRepo) Create(ctx context.Context, stats *domain.Stats) error {
	f.stats[stats.UserID] = stats
	return nil
}

func TestGetStats(t *testing.T) {
	repo := &fakeStatsRepo{stats: map[string]*domain.Stats{
		"user-1": {UserID: "user-1", TotalPoints: 250, Level: 2, CurrentStreak: 4, CompletedTasks: 17},
	}}
	uc := New(repo, nil)

	stats, err := uc.GetStats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalPoints != 250 || stats.Level != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGetStats_MissingRowReadsAsZero(t *testing.T) {
	uc := New(&fakeStatsRepo{stats: map[string]*domain.Stats{}}, nil)

	stats, err := uc.GetStats(context.Background(), "new-user")
	if err != nil {
		t.Fatalf("GetStats() error = %v, want zero aggregate", err)
	}
	if stats.UserID != "new-user" || stats.TotalPoints != 0 || stats.Level != 1 {
		t.Errorf("stats = %+v, want zero aggregate at level 1", stats)
	}
}

func TestGetStats_StorageFailureSurfaces(t *testing.T) {
	repo := &fakeStatsRepo{err: errors.New("connection refused")}
	uc := New(repo, nil)

	if _, err := uc.GetStats(context.Background(), "user-1"); err == nil {
		t.Error("GetStats() error = nil, want storage failure surfaced")
	}
}
