package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/studybuddy/backend/domain"
)

type fakeUserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	f.nextID++
	user.ID = string(rune('a' + f.nextID - 1))
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.byEmail[user.Email] = &copied
	return user, nil
}

type fakeStatsRepo struct {
	mu    sync.Mutex
	seeds map[string]*domain.Stats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{seeds: make(map[string]*domain.Stats)}
}

func (f *fakeStatsRepo) Get(ctx context.Context, userID string) (*domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.seeds[userID]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (f *fakeStatsRepo) Create(ctx context.Context, stats *domain.Stats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seeds[stats.UserID]; !ok {
		copied := *stats
		f.seeds[stats.UserID] = &copied
	}
	return nil
}

type fakeSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeUserRepo, *fakeStatsRepo, *fakeSessionRepo) {
	t.Helper()
	users := newFakeUserRepo()
	stats := newFakeStatsRepo()
	sessions := newFakeSessionRepo()
	uc := New(users, stats, sessions, Config{JWTSecret: "test-secret", Issuer: "studybuddy-test"}, nil)
	return uc, users, stats, sessions
}

func TestSignup_SeedsStats(t *testing.T) {
	uc, _, stats, _ := newTestUseCase(t)

	user, err := uc.Signup(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if user.ID == "" {
		t.Error("new user has no id")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}

	seeded, err := stats.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("stats not seeded: %v", err)
	}
	if seeded.TotalPoints != 0 || seeded.Level != 1 {
		t.Errorf("seeded stats = %+v, want zero aggregate at level 1", seeded)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	if _, err := uc.Signup(context.Background(), "ada@example.com", "pw1"); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}
	_, err := uc.Signup(context.Background(), "ada@example.com", "pw2")
	if err != domain.ErrEmailTaken {
		t.Errorf("second Signup() error = %v, want ErrEmailTaken", err)
	}
}

func TestSignup_RequiresCredentials(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	if _, err := uc.Signup(context.Background(), "", "pw"); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("Signup without email: error = %v, want INVALID", err)
	}
	if _, err := uc.Signup(context.Background(), "a@b.c", ""); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("Signup without password: error = %v, want INVALID", err)
	}
}

func TestLogin_IssuesSessionAndToken(t *testing.T) {
	uc, _, _, sessions := newTestUseCase(t)

	user, err := uc.Signup(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	session, token, err := uc.Login(context.Background(), "ada@example.com", "hunter22", time.Hour)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.UserID != user.ID {
		t.Errorf("session.UserID = %q, want %q", session.UserID, user.ID)
	}
	if _, err := sessions.Get(context.Background(), session.ID); err != nil {
		t.Errorf("session not persisted: %v", err)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != user.ID {
		t.Errorf("user_id claim = %v, want %q", claims["user_id"], user.ID)
	}
	if claims["session_id"] != session.ID {
		t.Errorf("session_id claim = %v, want %q", claims["session_id"], session.ID)
	}
	if claims["iss"] != "studybuddy-test" {
		t.Errorf("iss claim = %v, want studybuddy-test", claims["iss"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	if _, err := uc.Signup(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	_, _, err := uc.Login(context.Background(), "ada@example.com", "wrong", time.Hour)
	if err != domain.ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, _, err := uc.Login(context.Background(), "ghost@example.com", "pw", time.Hour)
	if err != domain.ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials (no account enumeration)", err)
	}
}

func TestValidateSession(t *testing.T) {
	uc, _, _, sessions := newTestUseCase(t)

	live := &domain.Session{ID: "live", UserID: "u", ExpiresAt: time.Now().Add(time.Hour)}
	expired := &domain.Session{ID: "expired", UserID: "u", ExpiresAt: time.Now().Add(-time.Minute)}
	_ = sessions.Save(context.Background(), live)
	_ = sessions.Save(context.Background(), expired)

	if err := uc.ValidateSession(context.Background(), "live"); err != nil {
		t.Errorf("live session rejected: %v", err)
	}
	if err := uc.ValidateSession(context.Background(), "expired"); err != domain.ErrSessionNotFound {
		t.Errorf("expired session: error = %v, want ErrSessionNotFound", err)
	}
	// Expired sessions are purged on validation.
	if _, err := sessions.Get(context.Background(), "expired"); err != domain.ErrSessionNotFound {
		t.Errorf("expired session not deleted: %v", err)
	}
	if err := uc.ValidateSession(context.Background(), "missing"); err != domain.ErrSessionNotFound {
		t.Errorf("missing session: error = %v, want ErrSessionNotFound", err)
	}
}

func TestRevokeSession(t *testing.T) {
	uc, _, _, sessions := newTestUseCase(t)

	_ = sessions.Save(context.Background(), &domain.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	if err := uc.RevokeSession(context.Background(), "s1"); err != nil {
		t.Fatalf("RevokeSession() error = %v", err)
	}
	if _, err := sessions.Get(context.Background(), "s1"); err != domain.ErrSessionNotFound {
		t.Errorf("session still present after revoke: %v", err)
	}
}

func TestRefreshSession(t *testing.T) {
	uc, _, _, sessions := newTestUseCase(t)

	original := &domain.Session{ID: "s1", UserID: "u", Email: "a@b.c", ExpiresAt: time.Now().Add(time.Minute)}
	_ = sessions.Save(context.Background(), original)

	session, token, err := uc.RefreshSession(context.Background(), "s1", 2*time.Hour)
	if err != nil {
		t.Fatalf("RefreshSession() error = %v", err)
	}
	if token == "" {
		t.Error("no token reissued")
	}
	if !session.ExpiresAt.After(time.Now().Add(time.Hour)) {
		t.Errorf("session not extended, expires %v", session.ExpiresAt)
	}
}
