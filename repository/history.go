package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// UserCompletion is one row of the completions-per-user aggregation.
type UserCompletion struct {
	UserID    string `json:"user_id"`
	Completed int    `json:"completed"`
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	// ListByTask returns a task's audit trail in insertion order.
	ListByTask(ctx context.Context, taskID string) ([]domain.HistoryEntry, error)
	// DeleteByTask removes every entry for a task and returns how many were
	// deleted. Only task deletion cascades here; entries are never removed
	// individually.
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
	// CompletionsByUser aggregates status-change entries whose new value is
	// completed, grouped by acting user.
	CompletionsByUser(ctx context.Context) ([]UserCompletion, error)
}
