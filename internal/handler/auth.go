package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/handler/dto"
	"github.com/stockroom/stockroom/internal/service"
	"github.com/stockroom/stockroom/internal/validation"
)

// Fixed response messages for the auth endpoints.
const (
	msgUserRegistered     = "User registered successfully"
	msgLoginSuccessful    = "Login successful"
	msgLoggedOut          = "Logged out successfully"
	msgInvalidCredentials = "Invalid credentials"
)

// AuthHandler handles registration, login and logout requests.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Failure("Invalid request body"))
		return
	}

	user, token, err := h.svc.Register(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", user.ID,
		"email", user.Email,
	)

	writeJSON(w, http.StatusCreated, dto.Success(msgUserRegistered, dto.AuthData{
		User:  user,
		Token: token,
	}))
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Failure("Invalid request body"))
		return
	}

	user, token, err := h.svc.Login(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.Success(msgLoginSuccessful, dto.AuthData{
		User:  user,
		Token: token,
	}))
}

// Logout handles POST /api/logout. The gate has already resolved the token;
// only the presenting token is revoked.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())

	if err := h.svc.Logout(r.Context(), authCtx.Token); err != nil {
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Failure("An internal error occurred"))
		return
	}

	h.logger.Info("user_logged_out", "user_id", authCtx.UserID)

	writeJSON(w, http.StatusOK, dto.Success(msgLoggedOut, nil))
}

// handleServiceError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, dto.Failure(msgInvalidCredentials))
	default:
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Failure("An internal error occurred"))
	}
}
