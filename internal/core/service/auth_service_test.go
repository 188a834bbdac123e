package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderly/auth-service/internal/core/domain"
	"github.com/wanderly/auth-service/internal/core/ports"
)

// --- stubs ---

type stubRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (r *stubRepo) Create(_ context.Context, name, email, passwordHash string) (*domain.User, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	if _, exists := r.byEmail[key]; exists {
		return nil, domain.ErrEmailTaken
	}
	u := &domain.User{
		ID:           r.nextID,
		Name:         strings.TrimSpace(name),
		Email:        key,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		LastLogin:    time.Now().UTC(),
	}
	r.nextID++
	r.byEmail[key] = u
	return u.Clone(), nil
}

func (r *stubRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *stubRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) Update(_ context.Context, id int64, update ports.ProfileUpdate) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			if update.Name != nil {
				u.Name = strings.TrimSpace(*update.Name)
			}
			if update.Preferences != nil && update.Preferences.TravelStyle != nil {
				u.Preferences.TravelStyle = *update.Preferences.TravelStyle
			}
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) TouchLastLogin(_ context.Context, id int64) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLogin = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubRepo) Count(context.Context) int { return len(r.byEmail) }

// stubHasher avoids bcrypt cost in orchestration tests.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type stubTokens struct {
	issued ports.Claims
	verify func(string) (ports.Claims, error)
}

func (s *stubTokens) Issue(claims ports.Claims) (string, error) {
	s.issued = claims
	return "token-ok", nil
}

func (s *stubTokens) Verify(raw string) (ports.Claims, error) {
	if s.verify != nil {
		return s.verify(raw)
	}
	return s.issued, nil
}

type stubThrottle struct {
	allowed  bool
	failures int
	resets   int
}

func (s *stubThrottle) Allow(context.Context, string) bool    { return s.allowed }
func (s *stubThrottle) RecordFailure(context.Context, string) { s.failures++ }
func (s *stubThrottle) Reset(context.Context, string)         { s.resets++ }

func newTestService() (*AuthService, *stubRepo, *stubTokens, *stubThrottle) {
	repo := newStubRepo()
	tokens := &stubTokens{}
	throttle := &stubThrottle{allowed: true}
	svc := NewAuthService(repo, stubHasher{}, tokens, throttle, zerolog.Nop())
	return svc, repo, tokens, throttle
}

// --- tests ---

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, tokens, _ := newTestService()

	user, token, err := svc.Register(context.Background(), "Asha", "A@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token != "token-ok" {
		t.Fatalf("expected issued token, got %q", token)
	}
	if user.PasswordHash != "hashed:secret1" {
		t.Fatalf("expected hashed credential, got %q", user.PasswordHash)
	}
	if tokens.issued.UserID != user.ID || tokens.issued.Email != user.Email {
		t.Fatalf("token claims do not match user: %+v", tokens.issued)
	}

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("record not stored: %v", err)
	}
	if stored.PasswordHash == "secret1" {
		t.Fatalf("plaintext must never be stored")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "", "a@x.com", "secret1"); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField for empty name, got %v", err)
	}
	// Whitespace-only values survive binding but trim to nothing.
	if _, _, err := svc.Register(ctx, "   ", "a@x.com", "secret1"); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField for blank name, got %v", err)
	}
	if _, _, err := svc.Register(ctx, "Asha", "", "secret1"); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField for empty email, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", "secret1"); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField for empty login email, got %v", err)
	}
	if _, _, err := svc.Register(ctx, "Asha", "a@x.com", "short"); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Asha", "A@x.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(ctx, "Imposter", "a@X.COM", "secret2"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, throttle := newTestService()
	ctx := context.Background()

	created, _, err := svc.Register(ctx, "Asha", "A@x.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.ID != created.ID {
		t.Fatalf("expected same user id, got %d and %d", user.ID, created.ID)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset on success, got %d", throttle.resets)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _, throttle := newTestService()
	ctx := context.Background()

	_, _, _ = svc.Register(ctx, "Asha", "a@x.com", "secret1")

	// Wrong password and unknown email return the same error so accounts
	// cannot be enumerated.
	if _, _, err := svc.Login(ctx, "a@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@x.com", "secret1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", throttle.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, _, _, throttle := newTestService()
	throttle.allowed = false

	if _, _, err := svc.Login(context.Background(), "a@x.com", "secret1"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, repo, tokens, _ := newTestService()
	ctx := context.Background()

	created, _, _ := svc.Register(ctx, "Asha", "a@x.com", "secret1")

	user, err := svc.Authenticate(ctx, "token-ok")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	// A structurally valid token for a deleted user is rejected: the store
	// is authoritative.
	delete(repo.byEmail, "a@x.com")
	if _, err := svc.Authenticate(ctx, "token-ok"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	tokens.verify = func(string) (ports.Claims, error) {
		return ports.Claims{}, domain.ErrTokenExpired
	}
	if _, err := svc.Authenticate(ctx, "anything"); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, _, _ := svc.Register(ctx, "Asha", "a@x.com", "secret1")

	name := "Asha Nair"
	updated, err := svc.UpdateProfile(ctx, created.ID, ports.ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Asha Nair" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}

	if _, err := svc.UpdateProfile(ctx, 99, ports.ProfileUpdate{Name: &name}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
