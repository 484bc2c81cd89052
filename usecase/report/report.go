package report

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

// PerformanceReport aggregates task completions out of the history log.
type PerformanceReport struct {
	TotalTasksCompleted          int     `json:"total_tasks_completed"`
	DistinctUsers                int     `json:"distinct_users_who_completed_tasks"`
	AverageTasksCompletedPerUser float64 `json:"average_tasks_completed_per_user"`
}

// UseCase reads the history log produced by the mutation engine. It never
// participates in mutation itself.
type UseCase struct {
	users    repository.UserRepository
	history  repository.HistoryRepository
	cache    repository.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, history repository.HistoryRepository, cache repository.Cache, cacheTTL time.Duration, logger *zap.Logger) *UseCase {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		history:  history,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetPerformanceReport is manager-only. The role check runs before any
// history read so a denied caller never touches the log.
func (uc *UseCase) GetPerformanceReport(ctx context.Context, actorID string) (*PerformanceReport, error) {
	actor, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, domain.ErrReportForbidden
	}

	if cached := uc.fromCache(ctx); cached != nil {
		return cached, nil
	}

	completions, err := uc.history.CompletionsByUser(ctx)
	if err != nil {
		return nil, err
	}

	result := &PerformanceReport{DistinctUsers: len(completions)}
	for _, c := range completions {
		result.TotalTasksCompleted += c.Completed
	}
	if result.DistinctUsers > 0 {
		result.AverageTasksCompletedPerUser = float64(result.TotalTasksCompleted) / float64(result.DistinctUsers)
	}

	uc.toCache(ctx, result)
	return result, nil
}

func (uc *UseCase) fromCache(ctx context.Context) *PerformanceReport {
	if uc.cache == nil {
		return nil
	}
	value, ok, err := uc.cache.Get(ctx, repository.ReportPerformanceKey)
	if err != nil {
		uc.logger.Warn("report cache read failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var cached PerformanceReport
	if err := json.Unmarshal([]byte(value), &cached); err != nil {
		return nil
	}
	return &cached
}

func (uc *UseCase) toCache(ctx context.Context, result *PerformanceReport) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, repository.ReportPerformanceKey, string(payload), uc.cacheTTL); err != nil {
		uc.logger.Warn("report cache write failed", zap.Error(err))
	}
}
