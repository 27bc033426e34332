package reward

import (
	"context"

	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type UseCase struct {
	rewards repository.RewardRepository
	stats   repository.StatsRepository
	logger  *zap.Logger
}

func New(rewards repository.RewardRepository, stats repository.StatsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		rewards: rewards,
		stats:   stats,
		logger:  logger,
	}
}

func (uc *UseCase) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	return uc.rewards.List(ctx)
}

// Redeem claims a reward once the user's lifetime points reach its cost.
// Points are never deducted; total_points is a monotonic lifetime counter.
func (uc *UseCase) Redeem(ctx context.Context, userID, rewardID string) (*domain.Redemption, error) {
	reward, err := uc.rewards.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.stats.Get(ctx, userID)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		stats = domain.NewStats(userID)
	}
	if stats.TotalPoints < reward.PointCost {
		return nil, domain.ErrInsufficientPoints
	}

	redemption := &domain.Redemption{
		UserID:   userID,
		RewardID: rewardID,
	}
	if err := uc.rewards.Redeem(ctx, redemption); err != nil {
		return nil, err
	}

	uc.logger.Info("reward redeemed",
		zap.String("user_id", userID),
		zap.String("reward_id", rewardID),
		zap.Int("point_cost", reward.PointCost))
	return redemption, nil
}

func (uc *UseCase) ListRedemptions(ctx context.Context, userID string) ([]domain.Redemption, error) {
	return uc.rewards.ListRedemptions(ctx, userID)
}
