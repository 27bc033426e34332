package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type rewardRepository struct {
	pool *pgxpool.Pool
}

// NewRewardRepository returns a Postgres-backed RewardRepository.
func NewRewardRepository(pool *pgxpool.Pool) repository.RewardRepository {
	return &rewardRepository{pool: pool}
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	const query = `
	SELECT id, name, description, point_cost, created_at
	FROM rewards
	WHERE id = $1
	`
	var reward domain.Reward
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&reward.ID,
		&reward.Name,
		&reward.Description,
		&reward.PointCost,
		&reward.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) List(ctx context.Context) ([]domain.Reward, error) {
	const query = `
	SELECT id, name, description, point_cost, created_at
	FROM rewards
	ORDER BY point_cost ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.Reward
	for rows.Next() {
		var reward domain.Reward
		if err := rows.Scan(
			&reward.ID,
			&reward.Name,
			&reward.Description,
			&reward.PointCost,
			&reward.CreatedAt,
		); err != nil {
			return nil, err
		}
		rewards = append(rewards, reward)
	}
	return rewards, rows.Err()
}

func (r *rewardRepository) Redeem(ctx context.Context, redemption *domain.Redemption) error {
	if redemption == nil || redemption.UserID == "" || redemption.RewardID == "" {
		return domain.ErrInvalidPayload
	}
	if redemption.ID == "" {
		redemption.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO user_rewards (id, user_id, reward_id)
	VALUES ($1, $2, $3)
	RETURNING redeemed_at
	`
	return r.pool.QueryRow(ctx, query,
		redemption.ID,
		redemption.UserID,
		redemption.RewardID,
	).Scan(&redemption.RedeemedAt)
}

func (r *rewardRepository) ListRedemptions(ctx context.Context, userID string) ([]domain.Redemption, error) {
	const query = `
	SELECT id, user_id, reward_id, redeemed_at
	FROM user_rewards
	WHERE user_id = $1
	ORDER BY redeemed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redemptions []domain.Redemption
	for rows.Next() {
		var redemption domain.Redemption
		if err := rows.Scan(
			&redemption.ID,
			&redemption.UserID,
			&redemption.RewardID,
			&redemption.RedeemedAt,
		); err != nil {
			return nil, err
		}
		redemptions = append(redemptions, redemption)
	}
	return redemptions, rows.Err()
}
