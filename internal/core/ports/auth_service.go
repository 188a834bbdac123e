package ports

import (
	"context"

	"github.com/wanderly/auth-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Authenticate verifies a raw token and resolves the record behind it.
	// A structurally valid token for a deleted user is rejected: the store,
	// not the token, is authoritative.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*domain.User, error)
}
