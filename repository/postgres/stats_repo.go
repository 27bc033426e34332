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

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns a Postgres-backed StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Get(ctx context.Context, userID string) (*domain.Stats, error) {
	const query = `
	SELECT user_id, total_points, level, current_streak, last_completion_date, completed_tasks, updated_at
	FROM user_stats
	WHERE user_id = $1
	`
	return scanStats(r.pool.QueryRow(ctx, query, userID))
}

func (r *statsRepository) Create(ctx context.Context, stats *domain.Stats) error {
	if stats == nil || stats.UserID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO user_stats (user_id, total_points, level, current_streak, last_completion_date, completed_tasks)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		stats.UserID,
		stats.TotalPoints,
		stats.Level,
		stats.CurrentStreak,
		nullTime(stats.LastCompletionDate),
		stats.CompletedTasks,
	)
	return err
}

func scanStats(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Stats, error) {
	var stats domain.Stats
	var lastCompletion *time.Time

	if err := row.Scan(
		&stats.UserID,
		&stats.TotalPoints,
		&stats.Level,
		&stats.CurrentStreak,
		&lastCompletion,
		&stats.CompletedTasks,
		&stats.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, err
	}

	stats.LastCompletionDate = lastCompletion
	return &stats, nil
}
