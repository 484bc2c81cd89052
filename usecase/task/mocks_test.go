package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
	// updateErr, when set, makes Update fail.
	updateErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := task
	return &copied, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if filter.ProjectID != "" && task.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	// The store never lets priority change on update.
	task.Priority = stored.Priority
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountByProject(_ context.Context, projectID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, task := range r.tasks {
		if task.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

type fakeProjectRepo struct {
	projects map[string]domain.Project
}

func newFakeProjectRepo(ids ...string) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: make(map[string]domain.Project)}
	for _, id := range ids {
		r.projects[id] = domain.Project{ID: id, Name: "project " + id}
	}
	return r
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &project, nil
}

func (r *fakeProjectRepo) List(_ context.Context, _ repository.ProjectFilter) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

// fakeHistoryRepo keeps entries in insertion order so tests can assert on
// audit ordering.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByTask(_ context.Context, taskID string) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.HistoryEntry
	for _, entry := range r.entries {
		if entry.TaskID == taskID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) DeleteByTask(_ context.Context, taskID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []domain.HistoryEntry
	var deleted int64
	for _, entry := range r.entries {
		if entry.TaskID == taskID {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return deleted, nil
}

func (r *fakeHistoryRepo) CompletionsByUser(_ context.Context) ([]repository.UserCompletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	var order []string
	for _, entry := range r.entries {
		if entry.ChangeType != domain.ChangeUpdate ||
			entry.FieldName != domain.FieldStatus ||
			entry.NewValue != string(domain.StatusCompleted) {
			continue
		}
		if _, seen := counts[entry.UserID]; !seen {
			order = append(order, entry.UserID)
		}
		counts[entry.UserID]++
	}
	var out []repository.UserCompletion
	for _, userID := range order {
		out = append(out, repository.UserCompletion{UserID: userID, Completed: counts[userID]})
	}
	return out, nil
}

func (r *fakeHistoryRepo) byType(changeType domain.ChangeType) []domain.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.HistoryEntry
	for _, entry := range r.entries {
		if entry.ChangeType == changeType {
			out = append(out, entry)
		}
	}
	return out
}

type fakeCache struct {
	mu          sync.Mutex
	values      map[string]string
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
		c.invalidated = append(c.invalidated, key)
	}
	return nil
}
