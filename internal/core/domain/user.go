package domain

import "time"

// Preferences holds the traveller-facing settings attached to an account.
// Updates merge field by field: an absent field in an update leaves the
// stored value untouched.
type Preferences struct {
	FavoriteDestinations []string `json:"favoriteDestinations"`
	TravelStyle          string   `json:"travelStyle"`
	LastSearches         []string `json:"lastSearches"`
}

// User is the persisted account record. PasswordHash is excluded from JSON
// so no API response can carry it; the store keeps its own snapshot
// representation that does include the hash.
type User struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	LastLogin    time.Time   `json:"lastLogin"`
	Preferences  Preferences `json:"preferences"`
}

// Clone returns a deep copy so callers never alias store-owned memory.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Preferences.FavoriteDestinations = append([]string(nil), u.Preferences.FavoriteDestinations...)
	clone.Preferences.LastSearches = append([]string(nil), u.Preferences.LastSearches...)
	return &clone
}
