package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/artmatch/internal/identity/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct{ mock.Mock }

func (m *mockUC) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*usecase.RegisterOutput)
	return out, args.Error(1)
}

func (m *mockUC) Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*usecase.LoginOutput)
	return out, args.Error(1)
}

func (m *mockUC) RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*usecase.RefreshTokenOutput)
	return out, args.Error(1)
}

func (m *mockUC) Logout(ctx context.Context, in usecase.LogoutInput) error {
	return m.Called(in).Error(0)
}

func (m *mockUC) PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error {
	return m.Called(in).Error(0)
}

func (m *mockUC) Profile(ctx context.Context) (*usecase.ProfileOutput, error) {
	clm := jwt.GetAuth(ctx)
	args := m.Called(clm.UserID)
	out, _ := args.Get(0).(*usecase.ProfileOutput)
	return out, args.Error(1)
}

func (m *mockUC) UserCount(ctx context.Context) (int64, error) {
	args := m.Called()
	total, _ := args.Get(0).(int64)
	return total, args.Error(1)
}

type stubVerifier struct{}

func (stubVerifier) Generate(int64, string) (string, error) { return "", nil }

func (stubVerifier) Verify(token string) (jwt.Claims, error) {
	if token != "good" {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{UserID: 7, UserEmail: "ada@example.com"}, nil
}

func setup(t *testing.T) (*router.Router, *mockUC) {
	t.Helper()
	m := &mockUC{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	ro := router.NewRouter(router.Config{JWT: stubVerifier{}})
	RegisterHTTPEndpoint(ro, m)
	return ro, m
}

func serve(ro http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	return rec
}

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHTTPEndpoint_Register(t *testing.T) {
	ro, m := setup(t)
	m.On("Register", usecase.RegisterInput{Email: "ada@example.com", Password: "password1"}).
		Return(&usecase.RegisterOutput{ID: 42, Email: "ada@example.com"}, nil)

	rec := serve(ro, http.MethodPost, "/api/v1/identity/register", `{"email":"ada@example.com","password":"password1"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	out := body(t, rec)
	assert.Equal(t, "Registration successful", out["message"])
	assert.Equal(t, map[string]any{"id": "42", "email": "ada@example.com"}, out["data"])
}

func TestHTTPEndpoint_RegisterUnknownField(t *testing.T) {
	ro, _ := setup(t)

	rec := serve(ro, http.MethodPost, "/api/v1/identity/register", `{"email":"a@b.c","password":"x","admin":true}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ro, m := setup(t)
		m.On("Login", usecase.LoginInput{Email: "ada@example.com", Password: "password1"}).
			Return(&usecase.LoginOutput{AccessToken: "at", RefreshToken: "rt"}, nil)

		rec := serve(ro, http.MethodPost, "/api/v1/identity/login", `{"email":"ada@example.com","password":"password1"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"access_token": "at", "refresh_token": "rt"}, body(t, rec)["data"])
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		ro, m := setup(t)
		m.On("Login", mock.Anything).
			Return(nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized))

		rec := serve(ro, http.MethodPost, "/api/v1/identity/login", `{"email":"ghost@example.com","password":"x"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", body(t, rec)["message"])
	})
}

func TestHTTPEndpoint_RefreshToken(t *testing.T) {
	ro, m := setup(t)
	m.On("RefreshToken", usecase.RefreshTokenInput{RefreshToken: "rt"}).
		Return(&usecase.RefreshTokenOutput{AccessToken: "at2", RefreshToken: "rt2"}, nil)

	rec := serve(ro, http.MethodPost, "/api/v1/identity/refresh", `{"refresh_token":"rt"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"access_token": "at2", "refresh_token": "rt2"}, body(t, rec)["data"])
}

func TestHTTPEndpoint_AuthenticatedRoutes(t *testing.T) {
	t.Run("RequireToken", func(t *testing.T) {
		ro, _ := setup(t)

		for _, path := range []string{"/api/v1/identity/logout", "/api/v1/identity/password/change"} {
			rec := serve(ro, http.MethodPost, path, `{}`, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		}
		rec := serve(ro, http.MethodGet, "/api/v1/identity/profile", "", "bad")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Logout", func(t *testing.T) {
		ro, m := setup(t)
		m.On("Logout", usecase.LogoutInput{RefreshToken: "rt"}).Return(nil)

		rec := serve(ro, http.MethodPost, "/api/v1/identity/logout", `{"refresh_token":"rt"}`, "good")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("PasswordChange", func(t *testing.T) {
		ro, m := setup(t)
		m.On("PasswordChange", usecase.PasswordChangeInput{CurrentPassword: "old", NewPassword: "newpassword"}).Return(nil)

		rec := serve(ro, http.MethodPost, "/api/v1/identity/password/change",
			`{"current_password":"old","new_password":"newpassword"}`, "good")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Profile", func(t *testing.T) {
		ro, m := setup(t)
		created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		m.On("Profile", int64(7)).Return(&usecase.ProfileOutput{ID: 7, Email: "ada@example.com", CreatedAt: created}, nil)

		rec := serve(ro, http.MethodGet, "/api/v1/identity/profile", "", "good")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"id":         "7",
			"email":      "ada@example.com",
			"created_at": "2026-01-02T03:04:05Z",
		}, body(t, rec)["data"])
	})
}

func TestHTTPEndpoint_UserCountIsPublic(t *testing.T) {
	ro, m := setup(t)
	m.On("UserCount").Return(int64(12), nil)

	rec := serve(ro, http.MethodGet, "/api/v1/identity/users/count", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"total": float64(12)}, body(t, rec)["data"])
}
