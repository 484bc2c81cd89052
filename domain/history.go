package domain

import "time"

// ChangeType classifies a history entry.
type ChangeType string

const (
	ChangeCreate  ChangeType = "create"
	ChangeUpdate  ChangeType = "update"
	ChangeComment ChangeType = "comment"
)

// FieldName identifies the task attribute an update entry refers to.
type FieldName string

const (
	FieldTitle       FieldName = "title"
	FieldDescription FieldName = "description"
	FieldDueDate     FieldName = "due_date"
	FieldStatus      FieldName = "status"
)

// HistoryEntry is one immutable audit record for a task. Entries are never
// mutated or reordered after insertion and are removed only when the owning
// task is deleted.
type HistoryEntry struct {
	ID         string     `json:"id"`
	TaskID     string     `json:"task_id"`
	UserID     string     `json:"user_id"`
	ChangeType ChangeType `json:"change_type"`
	FieldName  FieldName  `json:"field_name,omitempty"`
	OldValue   string     `json:"old_value,omitempty"`
	NewValue   string     `json:"new_value,omitempty"`
	Comment    string     `json:"comment,omitempty"`
	ChangeDate time.Time  `json:"change_date"`
}
