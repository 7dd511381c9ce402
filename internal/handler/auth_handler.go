package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"github.com/fakhrymubarak/city-dashboard/internal/service"
)

const invalidCredentials = "Invalid credentials"

type AuthServiceInterface interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler serves register, login and logout. SecureCookie marks the
// session cookie Secure and should be set when served over HTTPS.
type AuthHandler struct {
	AuthService  AuthServiceInterface
	CookieName   string
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthHandler(svc AuthServiceInterface, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{AuthService: svc, CookieName: cookieName, SessionTTL: sessionTTL}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSONBody(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.AuthService.Register(r.Context(), creds.Username, creds.Password)
	switch {
	case err == nil:
		writeJSONResponse(w, http.StatusOK, model.MessageResponse("User registered successfully"))
	case errors.Is(err, service.ErrMissingCredentials), errors.Is(err, service.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		config.GetLogger().Errorw("Registration failed", "username", creds.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "Error registering user")
	}
}

// HandleLogin opens a session and sets it as an HttpOnly cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSONBody(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID, err := h.AuthService.Login(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		msg := invalidCredentials
		writeJSONResponse(w, http.StatusBadRequest, model.Response{Error: &msg, Message: msg})
		return
	}
	if err != nil {
		config.GetLogger().Errorw("Login failed", "username", creds.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSONResponse(w, http.StatusOK, model.MessageResponse("Logged in successfully"))
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if cookie, err := r.Cookie(h.CookieName); err == nil {
		sessionID = cookie.Value
	}

	if err := h.AuthService.Logout(r.Context(), sessionID); err != nil {
		config.GetLogger().Errorw("Logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error logging out")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSONResponse(w, http.StatusOK, model.MessageResponse("Logged out successfully"))
}
