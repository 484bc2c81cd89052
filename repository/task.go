package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

type TaskFilter struct {
	ProjectID string
	Status    domain.Status
	Limit     int
	Offset    int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	// CountByProject returns a live count of the project's tasks. The
	// task-limit guard reads it once per create; the count is deliberately
	// not cached so a stale value can never let the limit slip.
	CountByProject(ctx context.Context, projectID string) (int, error)
}
