package ports

import (
	"context"

	"github.com/wanderly/auth-service/internal/core/domain"
)

// ProfileUpdate carries a partial mutation of a user record. Nil fields are
// left untouched; preference fields merge key by key rather than replacing
// the whole structure.
type ProfileUpdate struct {
	Name        *string
	Preferences *PreferencesUpdate
}

// PreferencesUpdate mirrors domain.Preferences with every field optional.
type PreferencesUpdate struct {
	FavoriteDestinations *[]string
	TravelStyle          *string
	LastSearches         *[]string
}

// UserRepository is the record store: the single source of truth for user
// accounts. Implementations must serialize mutations so that duplicate-email
// checks and appends cannot interleave.
type UserRepository interface {
	// Create assigns the next id, normalizes the email, and appends the
	// record. Returns domain.ErrEmailTaken when the normalized email exists.
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)

	// FindByEmail matches case-insensitively; domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID matches on the integer id; domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// Update applies a partial mutation; domain.ErrUserNotFound when absent.
	Update(ctx context.Context, id int64, update ProfileUpdate) (*domain.User, error)

	// TouchLastLogin stamps the record's last-login time.
	TouchLastLogin(ctx context.Context, id int64) error

	// Count reports the number of stored records.
	Count(ctx context.Context) int
}
