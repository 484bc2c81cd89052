package project

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type CreateInput struct {
	Name        string
	Description string
}

type UseCase struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		tasks:    tasks,
		logger:   logger,
	}
}

func (uc *UseCase) CreateProject(ctx context.Context, actorID string, input CreateInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     actorID,
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject fills TaskCount with a live count; the value is never stored
// so it cannot drift from the tasks that actually exist.
func (uc *UseCase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := uc.tasks.CountByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.TaskCount = count
	return project, nil
}

func (uc *UseCase) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return uc.projects.List(ctx, filter)
}

func (uc *UseCase) UpdateProject(ctx context.Context, id string, input CreateInput) (*domain.Project, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Name = input.Name
	project.Description = input.Description
	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject refuses to remove a project that still has tasks; callers
// must delete or move them first.
func (uc *UseCase) DeleteProject(ctx context.Context, id string) error {
	if _, err := uc.projects.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := uc.tasks.CountByProject(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProjectHasTasks
	}
	return uc.projects.Delete(ctx, id)
}
