package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/auth-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	session     *SessionBinder
}

func NewAuthHandler(authService ports.AuthService, session *SessionBinder) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

// Register creates a new user account and binds the session cookie.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.session.Bind(c, token)
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	})
}

// Login authenticates a user, stamps last-login, and binds the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.session.Bind(c, token)
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// CheckSession validates the cookie-bound token and resolves its user. Every
// failure mode flattens to 401: the frontend treats them all as "not signed
// in".
//
// @Summary      Validate the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/check-session [get]
func (h *AuthHandler) CheckSession(c echo.Context) error {
	token := ExtractToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token found")
	}

	user, err := h.authService.Authenticate(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Session valid",
		User:    user,
	})
}

// Logout clears the session cookie. Idempotent; always succeeds. The issued
// token stays valid server-side until expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Clear(c)
	return c.JSON(http.StatusOK, authResponse{Message: "Logged out successfully"})
}

// GetProfile returns the authenticated user's record.
//
// @Summary      Get profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{User: user})
}

// UpdateProfile merges the optional name and preferences onto the record.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	update := ports.ProfileUpdate{Name: req.Name}
	if req.Preferences != nil {
		update.Preferences = &ports.PreferencesUpdate{
			FavoriteDestinations: req.Preferences.FavoriteDestinations,
			TravelStyle:          req.Preferences.TravelStyle,
			LastSearches:         req.Preferences.LastSearches,
		}
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), id, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Profile updated successfully",
		User:    user,
	})
}
