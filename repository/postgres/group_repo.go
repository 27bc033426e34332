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

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository returns a Postgres-backed GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) repository.GroupRepository {
	return &groupRepository{pool: pool}
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	const query = `
	SELECT id, name, description, created_by, created_at, updated_at
	FROM study_groups
	WHERE id = $1
	`
	return scanGroup(r.pool.QueryRow(ctx, query, id))
}

func (r *groupRepository) List(ctx context.Context, filter repository.GroupFilter) ([]domain.Group, error) {
	const query = `
	SELECT g.id, g.name, g.description, g.created_by, g.created_at, g.updated_at
	FROM study_groups g
	WHERE ($1 = '' OR EXISTS (
		SELECT 1 FROM group_members m WHERE m.group_id = g.id AND m.user_id = $1
	))
	ORDER BY g.created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.MemberID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	if group == nil || group.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	if group.ID == "" {
		group.ID = uuid.NewString()
	}

	// The creator joins as admin in the same transaction.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertGroup = `
	INSERT INTO study_groups (id, name, description, created_by)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := tx.QueryRow(ctx, insertGroup,
		group.ID,
		group.Name,
		group.Description,
		group.CreatedBy,
	).Scan(&group.CreatedAt, &group.UpdatedAt); err != nil {
		return nil, err
	}

	const insertAdmin = `
	INSERT INTO group_members (group_id, user_id, role)
	VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, insertAdmin, group.ID, group.CreatedBy, domain.GroupRoleAdmin); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return group, nil
}

func (r *groupRepository) Join(ctx context.Context, membership *domain.Membership) error {
	if membership == nil || membership.GroupID == "" || membership.UserID == "" {
		return domain.ErrInvalidPayload
	}
	if membership.Role == "" {
		membership.Role = domain.GroupRoleMember
	}

	const query = `
	INSERT INTO group_members (group_id, user_id, role)
	VALUES ($1, $2, $3)
	RETURNING joined_at
	`
	if err := r.pool.QueryRow(ctx, query,
		membership.GroupID,
		membership.UserID,
		membership.Role,
	).Scan(&membership.JoinedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *groupRepository) Leave(ctx context.Context, groupID, userID string) error {
	const query = `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *groupRepository) Members(ctx context.Context, groupID string) ([]domain.Membership, error) {
	const query = `
	SELECT group_id, user_id, role, joined_at
	FROM group_members
	WHERE group_id = $1
	ORDER BY joined_at ASC
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func scanGroup(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Group, error) {
	var group domain.Group
	if err := row.Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedBy,
		&group.CreatedAt,
		&group.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}
