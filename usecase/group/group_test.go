package group

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type fakeGroupRepo struct {
	mu      sync.Mutex
	groups  map[string]*domain.Group
	members map[string][]domain.Membership
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:  make(map[string]*domain.Group),
		members: make(map[string][]domain.Membership),
	}
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group, ok := f.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	copied := *group
	return &copied, nil
}

func (f *fakeGroupRepo) List(ctx context.Context, filter repository.GroupFilter) ([]domain.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Group
	for _, group := range f.groups {
		out = append(out, *group)
	}
	return out, nil
}

func (f *fakeGroupRepo) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if group.ID == "" {
		group.ID = "group-1"
	}
	copied := *group
	f.groups[group.ID] = &copied
	f.members[group.ID] = []domain.Membership{{
		GroupID: group.ID, UserID: group.CreatedBy, Role: domain.GroupRoleAdmin, JoinedAt: time.Now(),
	}}
	return group, nil
}

func (f *fakeGroupRepo) Join(ctx context.Context, membership *domain.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[membership.GroupID] {
		if m.UserID == membership.UserID {
			return domain.ErrAlreadyMember
		}
	}
	membership.JoinedAt = time.Now()
	f.members[membership.GroupID] = append(f.members[membership.GroupID], *membership)
	return nil
}

func (f *fakeGroupRepo) Leave(ctx context.Context, groupID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	memberships := f.members[groupID]
	for i, m := range memberships {
		if m.UserID == userID {
			f.members[groupID] = append(memberships[:i], memberships[i+1:]...)
			return nil
		}
	}
	return domain.ErrGroupNotFound
}

func (f *fakeGroupRepo) Members(ctx context.Context, groupID string) ([]domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Membership(nil), f.members[groupID]...), nil
}

func TestCreateGroup(t *testing.T) {
	repo := newFakeGroupRepo()
	uc := New(repo, nil)

	group, err := uc.CreateGroup(context.Background(), &domain.Group{Name: "algebra", CreatedBy: "user-1"})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}

	members, _ := repo.Members(context.Background(), group.ID)
	if len(members) != 1 || members[0].Role != domain.GroupRoleAdmin {
		t.Errorf("creator not enrolled as admin: %v", members)
	}
}

func TestCreateGroup_RequiresName(t *testing.T) {
	uc := New(newFakeGroupRepo(), nil)

	if _, err := uc.CreateGroup(context.Background(), &domain.Group{CreatedBy: "u"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("CreateGroup() error = %v, want INVALID", err)
	}
}

func TestJoinGroup(t *testing.T) {
	repo := newFakeGroupRepo()
	uc := New(repo, nil)

	group, _ := uc.CreateGroup(context.Background(), &domain.Group{Name: "algebra", CreatedBy: "user-1"})

	membership, err := uc.JoinGroup(context.Background(), group.ID, "user-2")
	if err != nil {
		t.Fatalf("JoinGroup() error = %v", err)
	}
	if membership.Role != domain.GroupRoleMember {
		t.Errorf("Role = %q, want member", membership.Role)
	}

	if _, err := uc.JoinGroup(context.Background(), group.ID, "user-2"); err != domain.ErrAlreadyMember {
		t.Errorf("second JoinGroup() error = %v, want ErrAlreadyMember", err)
	}

	if _, err := uc.JoinGroup(context.Background(), "missing", "user-2"); err != domain.ErrGroupNotFound {
		t.Errorf("JoinGroup(missing) error = %v, want ErrGroupNotFound", err)
	}
}

func TestLeaveGroup(t *testing.T) {
	repo := newFakeGroupRepo()
	uc := New(repo, nil)

	group, _ := uc.CreateGroup(context.Background(), &domain.Group{Name: "algebra", CreatedBy: "user-1"})
	_, _ = uc.JoinGroup(context.Background(), group.ID, "user-2")

	if err := uc.LeaveGroup(context.Background(), group.ID, "user-2"); err != nil {
		t.Fatalf("LeaveGroup() error = %v", err)
	}
	members, _ := uc.Members(context.Background(), group.ID)
	if len(members) != 1 {
		t.Errorf("members = %d after leave, want 1", len(members))
	}
}
