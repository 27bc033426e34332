package repository

import (
	"context"
	"time"

	"github.com/studybuddy/backend/domain"
)

// CompletionResult carries everything a caller needs after a task completion:
// the terminal task row, the recomputed aggregate and the award itself.
type CompletionResult struct {
	Task          *domain.Task  `json:"task"`
	Stats         *domain.Stats `json:"stats"`
	PointsAwarded int           `json:"points_awarded"`
}

// CompletionRepository performs the complete-and-award sequence as one atomic
// unit: mark the task completed, fold the award into the user's stats, commit
// both or neither. Implementations must serialize concurrent completions of
// the same task (award at most once) and of different tasks for the same user
// (no lost stats updates).
type CompletionRepository interface {
	Complete(ctx context.Context, userID, taskID string, at time.Time) (*CompletionResult, error)
}
