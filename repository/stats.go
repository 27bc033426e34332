package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

type StatsRepository interface {
	Get(ctx context.Context, userID string) (*domain.Stats, error)
	Create(ctx context.Context, stats *domain.Stats) error
}
