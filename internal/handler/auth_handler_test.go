package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"github.com/fakhrymubarak/city-dashboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	registerErr error
	loginErr    error
	logoutErr   error
	sessionID   string
	loggedOut   string
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) error {
	return m.registerErr
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return m.sessionID, m.loginErr
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	m.loggedOut = sessionID
	return m.logoutErr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) model.Response {
	t.Helper()
	var resp model.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_HandleRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"success", `{"username": "alice", "password": "pw"}`, nil, http.StatusOK},
		{"bad body", `nope`, nil, http.StatusBadRequest},
		{"missing fields", `{}`, service.ErrMissingCredentials, http.StatusBadRequest},
		{"password too long", `{"username": "alice", "password": "x"}`, service.ErrPasswordTooLong, http.StatusBadRequest},
		{"duplicate", `{"username": "alice", "password": "pw"}`, repository.ErrUserExists, http.StatusConflict},
		{"store failure", `{"username": "alice", "password": "pw"}`, errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthService{registerErr: tt.err}, "sid", time.Hour)
			rr := httptest.NewRecorder()

			handler.HandleRegister(rr, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			resp := decodeResponse(t, rr)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "User registered successfully", resp.Message)
				assert.Nil(t, resp.Error)
			} else {
				assert.NotNil(t, resp.Error)
			}
		})
	}
}

func TestAuthHandler_HandleLogin_SetsCookie(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{sessionID: "abc-123"}, "sid", 2*time.Hour)
	rr := httptest.NewRecorder()

	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username": "alice", "password": "pw"}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Logged in successfully", decodeResponse(t, rr).Message)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, "abc-123", cookies[0].Value)
	assert.Equal(t, 7200, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
}

func TestAuthHandler_SecureCookie(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{sessionID: "abc-123"}, "sid", time.Hour)
	handler.SecureCookie = true

	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username": "alice", "password": "pw"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)

	rr = httptest.NewRecorder()
	handler.HandleLogout(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))
	cookies = rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestAuthHandler_HandleLogin_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, "sid", time.Hour)
	rr := httptest.NewRecorder()

	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username": "alice", "password": "bad"}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
	resp := decodeResponse(t, rr)
	assert.Equal(t, "Invalid credentials", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid credentials", *resp.Error)
}

func TestAuthHandler_HandleLogin_StoreFailure(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{loginErr: errors.New("redis down")}, "sid", time.Hour)
	rr := httptest.NewRecorder()

	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username": "a", "password": "b"}`)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAuthHandler_HandleLogout(t *testing.T) {
	svc := &mockAuthService{}
	handler := NewAuthHandler(svc, "sid", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc-123"})
	rr := httptest.NewRecorder()

	handler.HandleLogout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc-123", svc.loggedOut)
	assert.Equal(t, "Logged out successfully", decodeResponse(t, rr).Message)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthHandler_HandleLogout_Error(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{logoutErr: errors.New("redis down")}, "sid", time.Hour)
	rr := httptest.NewRecorder()

	handler.HandleLogout(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error logging out", *decodeResponse(t, rr).Error)
}
