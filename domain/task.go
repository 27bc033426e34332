package domain

import "time"

// Priority classifies how urgent a task is and drives the point award.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the task lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

const DefaultCategory = "general"

// Task represents a user-owned unit of study work.
type Task struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Priority         Priority   `json:"priority"`
	Category         string     `json:"category"`
	EstimatedMinutes int        `json:"estimated_minutes,omitempty"`
	Status           Status     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Normalize fills defaults for fields the caller left empty and coerces
// unrecognized priority values to medium.
func (t *Task) Normalize() {
	if t == nil {
		return
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		t.Priority = PriorityMedium
	}
}

// Validate checks the invariants enforced at create/update time.
func (t *Task) Validate() error {
	if t == nil || t.Title == "" {
		return ErrTitleRequired
	}
	if t.EstimatedMinutes < 0 {
		return NewError(ErrCodeInvalid, "estimated_minutes must be positive")
	}
	switch t.Status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		return NewError(ErrCodeInvalid, "unknown task status")
	}
	return nil
}
