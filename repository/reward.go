package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

type RewardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reward, error)
	List(ctx context.Context) ([]domain.Reward, error)
	Redeem(ctx context.Context, redemption *domain.Redemption) error
	ListRedemptions(ctx context.Context, userID string) ([]domain.Redemption, error)
}
