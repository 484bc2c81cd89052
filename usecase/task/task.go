package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase/audit"
)

// Patch carries one optional value per mutable task attribute. The engine
// inspects each field explicitly instead of merging an untyped bag, which is
// what lets priority stripping and no-op suppression be enforced here rather
// than by caller discipline.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *domain.Status
	// Priority is accepted so callers can send it, but it is always
	// discarded: a task's priority never changes after creation.
	Priority *domain.Priority
}

// CreateInput holds the attributes a caller controls at creation time.
type CreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    domain.Priority
}

// UseCase orchestrates fetch-validate-diff-persist-record for every
// task-modifying operation. It holds no mutable state of its own and is
// safe to call concurrently.
type UseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	history  repository.HistoryRepository
	recorder *audit.Recorder
	cache    repository.Cache
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	history repository.HistoryRepository,
	recorder *audit.Recorder,
	cache repository.Cache,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		projects: projects,
		history:  history,
		recorder: recorder,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetHistory(ctx context.Context, taskID string) ([]domain.HistoryEntry, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return uc.history.ListByTask(ctx, taskID)
}

// CreateTask inserts a task into the project after checking the project
// exists and its task count is below the cap. The count-then-insert pair is
// not atomic: two concurrent creates can both read 19 and both insert. That
// race is accepted; a transactional guard would change observable behavior
// under load.
func (uc *UseCase) CreateTask(ctx context.Context, actorID, projectID string, input CreateInput) (*domain.Task, error) {
	if _, err := uc.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	count, err := uc.tasks.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxTasksPerProject {
		return nil, domain.ErrTaskLimitReached
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, domain.ErrInvalidPriority
	}

	task := &domain.Task{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if err := uc.recorder.TaskCreated(ctx, task, actorID); err != nil {
		uc.logger.Error("create entry lost", zap.String("task_id", task.ID), zap.Error(err))
	}
	return task, nil
}

// UpdateFields applies a partial update. Any priority in the patch is
// stripped before persistence. A status change is validated before anything
// is written; an illegal transition fails the whole call. One history entry
// is recorded per field whose value actually changed, in the fixed order
// title, description, due date, status.
func (uc *UseCase) UpdateFields(ctx context.Context, actorID, taskID string, patch Patch) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Priority != nil {
		uc.logger.Debug("discarding priority change attempt", zap.String("task_id", taskID))
	}

	if patch.Status != nil {
		if err := domain.ValidateStatusTransition(*patch.Status, task.Status); err != nil {
			return nil, err
		}
	}

	changes := diff(task, patch)
	apply(task, patch)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	statusChanged := false
	for _, ch := range changes {
		if err := uc.recorder.FieldChanged(ctx, task.ID, actorID, ch.field, ch.oldValue, ch.newValue); err != nil {
			uc.logger.Error("update entry lost",
				zap.String("task_id", task.ID),
				zap.String("field", string(ch.field)),
				zap.Error(err))
		}
		if ch.field == domain.FieldStatus {
			statusChanged = true
		}
	}
	if statusChanged {
		uc.invalidateReport(ctx)
	}
	return task, nil
}

// UpdateStatus changes only the status. An unchanged status is an idempotent
// no-op: nothing is written and no entry is recorded.
func (uc *UseCase) UpdateStatus(ctx context.Context, actorID, taskID string, status domain.Status) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateStatusTransition(status, task.Status); err != nil {
		return nil, err
	}
	if status == task.Status {
		return task, nil
	}

	oldStatus := task.Status
	task.Status = status
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if err := uc.recorder.FieldChanged(ctx, task.ID, actorID, domain.FieldStatus, string(oldStatus), string(status)); err != nil {
		uc.logger.Error("status entry lost", zap.String("task_id", task.ID), zap.Error(err))
	}
	uc.invalidateReport(ctx)
	return task, nil
}

// AddComment records exactly one comment entry, whatever the text contains,
// and touches the task so its updated_at moves.
func (uc *UseCase) AddComment(ctx context.Context, actorID, taskID, comment string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// No field changes; the update only refreshes updated_at.
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if err := uc.recorder.Commented(ctx, task.ID, actorID, comment); err != nil {
		uc.logger.Error("comment entry lost", zap.String("task_id", task.ID), zap.Error(err))
	}
	return task, nil
}

// DeleteTask removes the task's history first and the task second, so an
// entry can never reference a field-change whose task outlived it. A crash
// between the two steps leaves orphaned history, which nothing requires to
// resolve.
func (uc *UseCase) DeleteTask(ctx context.Context, actorID, taskID string) error {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return err
	}

	deleted, err := uc.history.DeleteByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := uc.recorder.DropTask(ctx, taskID); err != nil {
		uc.logger.Warn("buffered history purge failed", zap.String("task_id", taskID), zap.Error(err))
	}
	if err := uc.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	uc.logger.Info("task deleted",
		zap.String("task_id", taskID),
		zap.String("actor_id", actorID),
		zap.Int64("history_entries", deleted))
	uc.invalidateReport(ctx)
	return nil
}

func (uc *UseCase) invalidateReport(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, repository.ReportPerformanceKey); err != nil {
		uc.logger.Warn("report cache invalidation failed", zap.Error(err))
	}
}

type fieldChange struct {
	field    domain.FieldName
	oldValue string
	newValue string
}

// diff compares the patch against the task's current values in the fixed
// audit order. Fields absent from the patch, or present but equal, produce
// nothing.
func diff(task *domain.Task, patch Patch) []fieldChange {
	var changes []fieldChange

	if patch.Title != nil && *patch.Title != task.Title {
		changes = append(changes, fieldChange{domain.FieldTitle, task.Title, *patch.Title})
	}
	if patch.Description != nil && *patch.Description != task.Description {
		changes = append(changes, fieldChange{domain.FieldDescription, task.Description, *patch.Description})
	}
	if patch.DueDate != nil && !sameTime(task.DueDate, patch.DueDate) {
		changes = append(changes, fieldChange{domain.FieldDueDate, renderTime(task.DueDate), renderTime(patch.DueDate)})
	}
	if patch.Status != nil && *patch.Status != task.Status {
		changes = append(changes, fieldChange{domain.FieldStatus, string(task.Status), string(*patch.Status)})
	}
	return changes
}

func apply(task *domain.Task, patch Patch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func renderTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
