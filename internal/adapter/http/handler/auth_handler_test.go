package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finlane/payledger/internal/adapter/http/dto"
	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/auth"
)

type authenticatorStub struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
}

func (s *authenticatorStub) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := &domain.User{
		ID:       1,
		Username: "alice",
		Role:     domain.RoleAdmin,
	}

	handler := NewAuthHandler(&authenticatorStub{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "s3cret-pass" {
				t.Errorf("unexpected credentials %s/%s", username, password)
			}
			return user, nil
		},
	}, testJWTManager(), nil)

	body, _ := json.Marshal(dto.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a token, got empty string")
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Errorf("unexpected user: %+v", resp.User)
	}

	claims, err := testJWTManager().Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != 1 || claims.Role != domain.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&authenticatorStub{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}, testJWTManager(), nil)

	body, _ := json.Marshal(dto.LoginRequest{Username: "alice", Password: "guess"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	handler := NewAuthHandler(&authenticatorStub{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			t.Fatal("Authenticate should not be called for an invalid payload")
			return nil, nil
		},
	}, testJWTManager(), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"username": "alice"}`)))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
