package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/finlane/payledger/internal/adapter/http/dto"
	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/auth"
	"github.com/finlane/payledger/internal/infrastructure/metrics"
)

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authenticator Authenticator
	jwtManager    *auth.JWTManager
	metrics       *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler. metrics may be nil.
func NewAuthHandler(authenticator Authenticator, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		metrics:       m,
	}
}

// Login verifies credentials and issues a signed identity token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.countAttempt("failure")
		writeError(w, mapDomainError(err), "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		h.countAttempt("error")
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	h.countAttempt("success")
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		User:        dto.UserFromDomain(user),
	})
}

func (h *AuthHandler) countAttempt(status string) {
	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}
