package services

import (
	"context"
	"encoding/json"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/infrastructure/buffer"
	"github.com/taskforge/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase.HistoryBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	if b.processor == nil || entry == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:     entry.ID,
		TaskID: entry.TaskID,
		Data:   payload,
	}
	return b.processor.Enqueue(ctx, item)
}

func (b *BufferBridge) DropTask(ctx context.Context, taskID string) error {
	if b.processor == nil {
		return nil
	}
	return b.processor.DropTask(taskID)
}

var _ usecase.HistoryBuffer = (*BufferBridge)(nil)
