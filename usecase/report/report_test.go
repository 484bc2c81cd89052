package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (r *fakeUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ string) error       { return nil }

// fakeHistoryRepo serves canned completion aggregates and fails the test if
// anything else is called; the report path must stay read-only.
type fakeHistoryRepo struct {
	t           *testing.T
	completions []repository.UserCompletion
	queried     bool
}

func (r *fakeHistoryRepo) CompletionsByUser(_ context.Context) ([]repository.UserCompletion, error) {
	r.queried = true
	return r.completions, nil
}

func (r *fakeHistoryRepo) Create(_ context.Context, _ *domain.HistoryEntry) error {
	r.t.Fatal("report must not write history")
	return nil
}

func (r *fakeHistoryRepo) ListByTask(_ context.Context, _ string) ([]domain.HistoryEntry, error) {
	r.t.Fatal("report must not list task history")
	return nil, nil
}

func (r *fakeHistoryRepo) DeleteByTask(_ context.Context, _ string) (int64, error) {
	r.t.Fatal("report must not delete history")
	return 0, nil
}

type fakeCache struct {
	values map[string]string
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func fixture(t *testing.T, completions []repository.UserCompletion) (*UseCase, *fakeHistoryRepo, *fakeCache) {
	t.Helper()
	users := &fakeUserRepo{users: map[string]domain.User{
		"manager": {ID: "manager", Role: domain.RoleManager},
		"worker":  {ID: "worker", Role: domain.RoleUser},
	}}
	history := &fakeHistoryRepo{t: t, completions: completions}
	cache := &fakeCache{values: make(map[string]string)}
	return New(users, history, cache, time.Minute, nil), history, cache
}

func TestGetPerformanceReport_Aggregates(t *testing.T) {
	uc, _, _ := fixture(t, []repository.UserCompletion{
		{UserID: "alice", Completed: 3},
		{UserID: "bob", Completed: 1},
	})

	report, err := uc.GetPerformanceReport(context.Background(), "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalTasksCompleted != 4 {
		t.Errorf("total = %d, want 4", report.TotalTasksCompleted)
	}
	if report.DistinctUsers != 2 {
		t.Errorf("distinct users = %d, want 2", report.DistinctUsers)
	}
	if report.AverageTasksCompletedPerUser != 2.0 {
		t.Errorf("average = %v, want 2.0", report.AverageTasksCompletedPerUser)
	}
}

func TestGetPerformanceReport_EmptyLog(t *testing.T) {
	uc, _, _ := fixture(t, nil)

	report, err := uc.GetPerformanceReport(context.Background(), "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalTasksCompleted != 0 || report.DistinctUsers != 0 || report.AverageTasksCompletedPerUser != 0 {
		t.Errorf("expected zero report, got %+v", report)
	}
}

// A non-manager is rejected before the history log is ever read.
func TestGetPerformanceReport_ManagerOnly(t *testing.T) {
	uc, history, _ := fixture(t, []repository.UserCompletion{{UserID: "alice", Completed: 1}})

	_, err := uc.GetPerformanceReport(context.Background(), "worker")
	if !errors.Is(err, domain.ErrReportForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if history.queried {
		t.Error("history was queried for a denied caller")
	}

	_, err = uc.GetPerformanceReport(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestGetPerformanceReport_CacheHit(t *testing.T) {
	uc, history, cache := fixture(t, nil)

	cached, _ := json.Marshal(PerformanceReport{
		TotalTasksCompleted:          10,
		DistinctUsers:                5,
		AverageTasksCompletedPerUser: 2.0,
	})
	cache.values[repository.ReportPerformanceKey] = string(cached)

	report, err := uc.GetPerformanceReport(context.Background(), "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalTasksCompleted != 10 {
		t.Errorf("expected cached report, got %+v", report)
	}
	if history.queried {
		t.Error("history queried despite a cache hit")
	}
}

func TestGetPerformanceReport_PopulatesCache(t *testing.T) {
	uc, _, cache := fixture(t, []repository.UserCompletion{{UserID: "alice", Completed: 2}})

	if _, err := uc.GetPerformanceReport(context.Background(), "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.values[repository.ReportPerformanceKey]; !ok {
		t.Error("report was not cached")
	}
}
