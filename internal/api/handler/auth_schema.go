package handler

import "github.com/wanderly/auth-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// preferencesRequest uses pointers throughout: only fields present in the
// request body are merged onto the stored preferences.
type preferencesRequest struct {
	FavoriteDestinations *[]string `json:"favoriteDestinations"`
	TravelStyle          *string   `json:"travelStyle"`
	LastSearches         *[]string `json:"lastSearches"`
}

type updateProfileRequest struct {
	Name        *string             `json:"name"`
	Preferences *preferencesRequest `json:"preferences"`
}

// authResponse is the success envelope. User serializes without the password
// hash (domain.User excludes it from JSON).
type authResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}
