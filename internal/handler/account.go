package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/handler/dto"
	"github.com/hireboard/hireboard/internal/middleware"
	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/service"
)

// AccountHandler handles HTTP requests for signup, login and sessions.
type AccountHandler struct {
	svc          *service.AccountService
	logger       *slog.Logger
	secureCookie bool
}

// NewAccountHandler creates a new AccountHandler.
// secureCookie should be true everywhere except local development.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger, secureCookie bool) *AccountHandler {
	return &AccountHandler{
		svc:          svc,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Signup handles POST /api/v1/auth/signup.
// Creates the account with its role profile and logs the new user in.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, issued, err := h.svc.Signup(r.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("account_created",
		"user_id", user.ID,
		"role", string(issued.Session.Role),
	)

	h.setSessionCookie(w, issued)
	writeJSON(w, http.StatusCreated, h.sessionResponse(user, issued))
}

// Login handles POST /api/v1/auth/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, issued, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("login", "user_id", user.ID)

	h.setSessionCookie(w, issued)
	writeJSON(w, http.StatusOK, h.sessionResponse(user, issued))
}

// Logout handles POST /api/v1/auth/logout.
// Revokes the current session and clears the cookie.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := sessionTokenFromRequest(r)

	if err := h.svc.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
// Returns the authenticated account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	user, err := h.svc.GetUser(r.Context(), authCtx.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user, authCtx.Role))
}

// setSessionCookie attaches the session token as an HttpOnly cookie.
func (h *AccountHandler) setSessionCookie(w http.ResponseWriter, issued *service.IssuedSession) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    issued.Token,
		Path:     "/",
		Expires:  issued.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) sessionResponse(user *model.User, issued *service.IssuedSession) dto.SessionResponse {
	return dto.SessionResponse{
		User:      dto.ToUserResponse(user, issued.Session.Role),
		Token:     issued.Token,
		ExpiresAt: issued.Session.ExpiresAt,
	}
}

// handleServiceError maps service errors to HTTP responses.
func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username or email already in use")
	case errors.Is(err, service.ErrInvalidRole):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_ROLE", "Role must be employer or jobseeker")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// sessionTokenFromRequest extracts the session token for logout.
// Mirrors the lookup order of the auth middleware.
func sessionTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
