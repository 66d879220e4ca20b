package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/ocean-hazard-api/internal/dto"
	apierrors "github.com/yukikurage/ocean-hazard-api/internal/errors"
	"github.com/yukikurage/ocean-hazard-api/internal/middleware"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

type userResponse struct {
	User dto.UserDTO `json:"user"`
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.authService)

	r := newTestRouter()
	r.POST("/api/auth/register", handler.Register)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "new@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response userResponse
	decode(t, w, &response)
	require.Equal(t, "newuser", response.User.Username)
	require.Equal(t, "new@example.com", response.User.Email)
	require.NotEmpty(t, w.Result().Cookies())
	require.NotContains(t, w.Body.String(), "supersecret")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.authService)

	_, err := env.authService.CreateUser(services.SignupInput{
		Username: "existing",
		Email:    "taken@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newTestRouter()
	r.POST("/api/auth/register", handler.Register)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "another",
		"email":    "TAKEN@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var apiErr apierrors.APIError
	decode(t, w, &apiErr)
	require.Equal(t, apierrors.ErrCodeConflict, apiErr.Code)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.authService)

	r := newTestRouter()
	r.POST("/api/auth/register", handler.Register)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ab",
		"email":    "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	decode(t, w, &apiErr)
	require.Equal(t, "Invalid data", apiErr.Message)
	require.NotNil(t, apiErr.Details)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.authService)

	_, err := env.authService.CreateUser(services.SignupInput{
		Username: "existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newTestRouter()
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)

	var response userResponse
	decode(t, w, &response)
	require.Equal(t, "existing", response.User.Username)

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies()...)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.authService)

	r := newTestRouter()
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
