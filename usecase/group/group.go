package group

import (
	"context"

	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type UseCase struct {
	groups repository.GroupRepository
	logger *zap.Logger
}

func New(groups repository.GroupRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		groups: groups,
		logger: logger,
	}
}

func (uc *UseCase) CreateGroup(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	if group == nil || group.Name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "group name is required")
	}
	return uc.groups.Create(ctx, group)
}

func (uc *UseCase) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return uc.groups.GetByID(ctx, id)
}

func (uc *UseCase) ListGroups(ctx context.Context, filter repository.GroupFilter) ([]domain.Group, error) {
	return uc.groups.List(ctx, filter)
}

func (uc *UseCase) JoinGroup(ctx context.Context, groupID, userID string) (*domain.Membership, error) {
	if _, err := uc.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	membership := &domain.Membership{
		GroupID: groupID,
		UserID:  userID,
		Role:    domain.GroupRoleMember,
	}
	if err := uc.groups.Join(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (uc *UseCase) LeaveGroup(ctx context.Context, groupID, userID string) error {
	return uc.groups.Leave(ctx, groupID, userID)
}

func (uc *UseCase) Members(ctx context.Context, groupID string) ([]domain.Membership, error) {
	if _, err := uc.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return uc.groups.Members(ctx, groupID)
}
