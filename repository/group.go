package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

type GroupFilter struct {
	MemberID string
	Limit    int
	Offset   int
}

type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context, filter GroupFilter) ([]domain.Group, error)
	Create(ctx context.Context, group *domain.Group) (*domain.Group, error)
	Join(ctx context.Context, membership *domain.Membership) error
	Leave(ctx context.Context, groupID, userID string) error
	Members(ctx context.Context, groupID string) ([]domain.Membership, error)
}
