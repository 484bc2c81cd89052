package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

// Recorder appends audit entries to a task's history log. It never merges or
// dedupes; deciding which changes deserve an entry is the mutation engine's
// job. When the primary persist fails the entry is handed to the buffer for
// a later retry instead of being dropped.
type Recorder struct {
	history repository.HistoryRepository
	buffer  usecase.HistoryBuffer
	logger  *zap.Logger
}

func New(history repository.HistoryRepository, buffer usecase.HistoryBuffer, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		history: history,
		buffer:  buffer,
		logger:  logger,
	}
}

// TaskCreated records the single create entry emitted for a new task.
func (r *Recorder) TaskCreated(ctx context.Context, task *domain.Task, actorID string) error {
	return r.record(ctx, &domain.HistoryEntry{
		TaskID:     task.ID,
		UserID:     actorID,
		ChangeType: domain.ChangeCreate,
		NewValue:   fmt.Sprintf("Task '%s' was created.", task.Title),
	})
}

// FieldChanged records one update entry for a single changed field.
func (r *Recorder) FieldChanged(ctx context.Context, taskID, actorID string, field domain.FieldName, oldValue, newValue string) error {
	return r.record(ctx, &domain.HistoryEntry{
		TaskID:     taskID,
		UserID:     actorID,
		ChangeType: domain.ChangeUpdate,
		FieldName:  field,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

// Commented records one comment entry. Comment text is stored verbatim,
// empty strings included.
func (r *Recorder) Commented(ctx context.Context, taskID, actorID, comment string) error {
	return r.record(ctx, &domain.HistoryEntry{
		TaskID:     taskID,
		UserID:     actorID,
		ChangeType: domain.ChangeComment,
		Comment:    comment,
	})
}

// DropTask discards any queued entries for the task. Part of the cascade
// delete path.
func (r *Recorder) DropTask(ctx context.Context, taskID string) error {
	if r.buffer == nil {
		return nil
	}
	return r.buffer.DropTask(ctx, taskID)
}

func (r *Recorder) record(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ChangeDate.IsZero() {
		entry.ChangeDate = time.Now().UTC()
	}

	err := r.history.Create(ctx, entry)
	if err == nil {
		return nil
	}

	r.logger.Warn("history persist failed",
		zap.String("task_id", entry.TaskID),
		zap.String("change_type", string(entry.ChangeType)),
		zap.Error(err))

	if r.buffer == nil {
		return err
	}
	if bufErr := r.buffer.BufferHistory(ctx, entry); bufErr != nil {
		r.logger.Error("history buffering failed", zap.Error(bufErr))
		return err
	}
	return nil
}
