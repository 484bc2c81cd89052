package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository returns a Postgres-backed implementation of HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) repository.HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry == nil {
		return domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_history (id, task_id, user_id, change_type, field_name, old_value, new_value, comment, change_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
	RETURNING change_date
	`
	var changeDate interface{}
	if !entry.ChangeDate.IsZero() {
		changeDate = entry.ChangeDate
	}

	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.UserID,
		entry.ChangeType,
		entry.FieldName,
		entry.OldValue,
		entry.NewValue,
		entry.Comment,
		changeDate,
	).Scan(&entry.ChangeDate)
}

func (r *historyRepository) ListByTask(ctx context.Context, taskID string) ([]domain.HistoryEntry, error) {
	// seq is a bigserial assigned at insert, so ordering by it reproduces
	// insertion order even when two entries share a timestamp.
	const query = `
	SELECT id, task_id, user_id, change_type, field_name, old_value, new_value, comment, change_date
	FROM task_history
	WHERE task_id = $1
	ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.UserID,
			&entry.ChangeType,
			&entry.FieldName,
			&entry.OldValue,
			&entry.NewValue,
			&entry.Comment,
			&entry.ChangeDate,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *historyRepository) DeleteByTask(ctx context.Context, taskID string) (int64, error) {
	const query = `DELETE FROM task_history WHERE task_id = $1`
	tag, err := r.pool.Exec(ctx, query, taskID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *historyRepository) CompletionsByUser(ctx context.Context) ([]repository.UserCompletion, error) {
	const query = `
	SELECT user_id, COUNT(*)
	FROM task_history
	WHERE change_type = 'update'
	  AND field_name = 'status'
	  AND new_value = 'completed'
	GROUP BY user_id
	ORDER BY user_id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []repository.UserCompletion
	for rows.Next() {
		var c repository.UserCompletion
		if err := rows.Scan(&c.UserID, &c.Completed); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
