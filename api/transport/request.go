package transport

type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UserUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email string `json:"email"`
	TTL   int    `json:"ttl_seconds"`
}

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// TaskPatchRequest distinguishes absent fields from empty ones; only fields
// present in the body participate in the update. Priority is parsed but the
// engine always discards it.
type TaskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}
