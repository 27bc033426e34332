package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type completionRepository struct {
	pool   *pgxpool.Pool
	policy domain.StreakPolicy
}

// NewCompletionRepository wires the complete-and-award transaction. The task
// row and the user's stats row are both locked for the duration, so a task
// can be completed at most once and concurrent completions of different
// tasks by the same user never lose a stats increment.
func NewCompletionRepository(pool *pgxpool.Pool, policy domain.StreakPolicy) repository.CompletionRepository {
	if policy == "" {
		policy = domain.StreakPerCompletion
	}
	return &completionRepository{pool: pool, policy: policy}
}

func (r *completionRepository) Complete(ctx context.Context, userID, taskID string, at time.Time) (*repository.CompletionResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockTask = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND user_id = $2
	FOR UPDATE
	`
	task, err := scanTask(tx.QueryRow(ctx, lockTask, taskID, userID))
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return nil, domain.ErrTaskAlreadyCompleted
	}

	const completeTask = `
	UPDATE tasks
	SET status = $2, completed_at = $3, updated_at = $3
	WHERE id = $1
	`
	if _, err := tx.Exec(ctx, completeTask, task.ID, domain.StatusCompleted, at); err != nil {
		return nil, err
	}
	task.Status = domain.StatusCompleted
	completedAt := at
	task.CompletedAt = &completedAt
	task.UpdatedAt = at

	stats, err := lockStats(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	points := domain.PointsForPriority(task.Priority)
	stats.ApplyCompletion(points, at, r.policy)
	stats.UpdatedAt = at

	const saveStats = `
	INSERT INTO user_stats (user_id, total_points, level, current_streak, last_completion_date, completed_tasks, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id) DO UPDATE
	SET total_points = EXCLUDED.total_points,
		level = EXCLUDED.level,
		current_streak = EXCLUDED.current_streak,
		last_completion_date = EXCLUDED.last_completion_date,
		completed_tasks = EXCLUDED.completed_tasks,
		updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.Exec(ctx, saveStats,
		stats.UserID,
		stats.TotalPoints,
		stats.Level,
		stats.CurrentStreak,
		nullTime(stats.LastCompletionDate),
		stats.CompletedTasks,
		stats.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &repository.CompletionResult{
		Task:          task,
		Stats:         stats,
		PointsAwarded: points,
	}, nil
}

// lockStats reads the user's aggregate under a row lock. Accounts created
// before the stats table existed have no row yet; for those the zero
// aggregate is inserted first and then locked, so two first completions
// serialize on the same row instead of both starting from zero.
func lockStats(ctx context.Context, tx pgx.Tx, userID string) (*domain.Stats, error) {
	const query = `
	SELECT user_id, total_points, level, current_streak, last_completion_date, completed_tasks, updated_at
	FROM user_stats
	WHERE user_id = $1
	FOR UPDATE
	`
	stats, err := scanStats(tx.QueryRow(ctx, query, userID))
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, domain.ErrStatsNotFound) {
		return nil, err
	}

	const seed = `
	INSERT INTO user_stats (user_id, total_points, level, current_streak, completed_tasks, updated_at)
	VALUES ($1, 0, 1, 0, 0, NOW())
	ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, seed, userID); err != nil {
		return nil, err
	}
	return scanStats(tx.QueryRow(ctx, query, userID))
}
