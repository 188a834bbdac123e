package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wanderly/auth-service/internal/api/metrics"
	"github.com/wanderly/auth-service/internal/core/domain"
	"github.com/wanderly/auth-service/internal/core/ports"
)

// MinPasswordLength is the smallest accepted password, matching the public
// signup form's rule.
const MinPasswordLength = 6

// AuthService orchestrates the record store, hasher, and token provider to
// implement registration, login, and profile operations. It holds no state
// of its own.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenProvider
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenProvider,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, throttle: throttle, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	// The validator's required tag lets whitespace-only values through;
	// after trimming they are missing fields, not bad credentials.
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", domain.ErrMissingField
	}
	if len(password) < MinPasswordLength {
		return nil, "", domain.ErrWeakPassword
	}

	// The store enforces uniqueness again under its own lock; this check
	// only gives a fast path for the common duplicate case.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.Create(ctx, name, email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ports.Claims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, "", err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrMissingField
	}

	if !s.throttle.Allow(ctx, email) {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return nil, "", domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the
		// caller; both count as a failed attempt for this email key.
		s.throttle.RecordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.throttle.RecordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}
	s.throttle.Reset(ctx, email)

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, "", err
	}
	if refreshed, err := s.repo.FindByID(ctx, user.ID); err == nil {
		user = refreshed
	}

	token, err := s.tokens.Issue(ports.Claims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// Authenticate verifies the raw token and resolves its subject from the
// store. The store lookup is not optional: tokens are derived, the store is
// authoritative.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, claims.UserID)
}

func (s *AuthService) Profile(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) UpdateProfile(ctx context.Context, id int64, update ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", id).Msg("profile updated")
	return user, nil
}
