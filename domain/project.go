package domain

import "time"

// MaxTasksPerProject caps how many tasks a single project may hold.
const MaxTasksPerProject = 20

// Project groups tasks under an owner. Tasks reference the project through
// their project_id back-reference; the project never embeds a task list.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	// TaskCount is computed by query on read paths, never stored.
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
