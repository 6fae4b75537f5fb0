package inbound

import (
	"github.com/shandysiswandi/artmatch/internal/identity/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for account and session workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account with an Argon2id protected password.
// @Summary Register account
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Created account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already in use"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{ID: resp.ID, Email: resp.Email}, nil
}

// Login authenticates a user and returns tokens.
// @Summary Authenticate user
// @Description An unknown email and a wrong password produce the same 401.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=TokenResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid email or password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return TokenResponse{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// RefreshToken rotates a refresh token and issues a new access token.
// @Summary Refresh tokens
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh payload"
// @Success 200 {object} router.successResponse{data=TokenResponse} "Rotated tokens"
// @Failure 401 {object} router.errorResponse "Invalid or expired refresh token"
// @Failure 403 {object} router.errorResponse "Token reuse detected"
// @Router /api/v1/identity/refresh [post]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	var req RefreshTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return nil, err
	}

	return TokenResponse{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// Logout revokes the given refresh token.
// @Summary Logout
// @Tags Identity, Authentication
// @Security BearerAuth
// @Accept json
// @Param request body LogoutRequest true "Logout payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/identity/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	var req LogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.Logout(r.Context(), usecase.LogoutInput{RefreshToken: req.RefreshToken})
}

// PasswordChange replaces the current user's password.
// @Summary Change password
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Accept json
// @Param request body PasswordChangeRequest true "Password change payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/change [post]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}

// Profile retrieves the current user's profile details.
// @Summary Get profile
// @Tags Identity, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile result"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{ID: resp.ID, Email: resp.Email, CreatedAt: resp.CreatedAt}, nil
}

// @Summary Count registered users
// @Tags Identity
// @Produce json
// @Success 200 {object} router.successResponse{data=UserCountResponse} "Total users"
// @Router /api/v1/identity/users/count [get]
func (h *HTTPEndpoint) UserCount(r *router.Request) (any, error) {
	total, err := h.uc.UserCount(r.Context())
	if err != nil {
		return nil, err
	}

	return UserCountResponse{Total: total}, nil
}
