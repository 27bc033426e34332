package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

type TaskFilter struct {
	UserID   string
	Status   string
	Category string
	Limit    int
	Offset   int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, userID string) error
	Categories(ctx context.Context, userID string) ([]string, error)
}
