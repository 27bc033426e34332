package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type UseCase struct {
	stats  repository.StatsRepository
	logger *zap.Logger
}

func New(stats repository.StatsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		stats:  stats,
		logger: logger,
	}
}

// GetStats returns the user's gamification aggregate. Accounts predating the
// stats table read as the all-zero aggregate rather than a not-found error.
func (uc *UseCase) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	stats, err := uc.stats.Get(ctx, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.NewStats(userID), nil
		}
		return nil, err
	}
	return stats, nil
}
