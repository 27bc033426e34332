package task

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
	"github.com/studybuddy/backend/usecase"
)

type UseCase struct {
	tasks       repository.TaskRepository
	completions repository.CompletionRepository
	buffer      usecase.OperationBuffer
	logger      *zap.Logger
}

func New(tasks repository.TaskRepository, completions repository.CompletionRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:       tasks,
		completions: completions,
		buffer:      buffer,
		logger:      logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id, userID)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.Normalize()
	// Every task starts pending; completion is a separate operation so that
	// points are awarded exactly once.
	task.Status = domain.StatusPending
	task.CompletedAt = nil
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task, err) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.Normalize()
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if task.Status == domain.StatusCompleted {
		return nil, domain.NewError(domain.ErrCodeInvalid, "tasks are completed through the complete operation")
	}

	// Completed tasks are immutable. A storage failure here falls through to
	// the update itself, which buffers on the same failure.
	current, err := uc.tasks.GetByID(ctx, task.ID, task.UserID)
	if err == nil && current.IsCompleted() {
		return nil, domain.ErrTaskCompleted
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return nil, err
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task, err) {
			return task, nil
		}
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id, userID string) error {
	if err := uc.tasks.Delete(ctx, id, userID); err != nil {
		task := &domain.Task{ID: id, UserID: userID}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, task, err) {
			return nil
		}
		return err
	}
	return nil
}

// CompleteTask marks the task completed and awards points in one transaction.
// A failure here is surfaced as-is: the completion path is never buffered,
// because replaying it later could double-award points.
func (uc *UseCase) CompleteTask(ctx context.Context, userID, taskID string) (*repository.CompletionResult, error) {
	result, err := uc.completions.Complete(ctx, userID, taskID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	uc.logger.Info("task completed",
		zap.String("task_id", taskID),
		zap.String("user_id", userID),
		zap.Int("points_awarded", result.PointsAwarded),
		zap.Int("current_streak", result.Stats.CurrentStreak))
	return result, nil
}

func (uc *UseCase) Categories(ctx context.Context, userID string) ([]string, error) {
	return uc.tasks.Categories(ctx, userID)
}

// shouldBuffer queues the operation for later replay when the failure came
// from the storage layer rather than from business rules.
func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task, cause error) bool {
	if uc.buffer == nil {
		return false
	}
	var dErr *domain.Error
	if errors.As(cause, &dErr) {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation), zap.Error(cause))
	return true
}
