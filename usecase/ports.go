package usecase

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// HistoryBuffer abstracts the write-behind queue so the audit recorder stays
// storage-agnostic. Entries land here only when the primary persist failed.
type HistoryBuffer interface {
	BufferHistory(ctx context.Context, entry *domain.HistoryEntry) error
	// DropTask discards queued entries for a task, so a replay can never
	// recreate history after the task's cascade delete.
	DropTask(ctx context.Context, taskID string) error
}
