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
	"github.com/finlane/payledger/internal/usecase"
)

type userServiceStub struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	createFn func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
}

func (s *userServiceStub) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *userServiceStub) Create(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func TestUserHandler_List(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 2, Username: "bob", Role: domain.RoleViewer, HashedPassword: "$2a$10$secret"},
				{ID: 1, Username: "alice", Role: domain.RoleAdmin, HashedPassword: "$2a$10$secret"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []*dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Username != "bob" {
		t.Errorf("unexpected users: %+v", resp)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("secret")) {
		t.Error("password hash leaked into response")
	}
}

func TestUserHandler_Create(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			return &domain.User{
				ID:        3,
				Username:  input.Username,
				Role:      input.Role,
				CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateUserRequest{Username: "carol", Password: "longenough", Role: "viewer"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 3 || resp.Username != "carol" {
		t.Errorf("unexpected user: %+v", resp)
	}
}

func TestUserHandler_Create_DuplicateUsername(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	})

	body, _ := json.Marshal(dto.CreateUserRequest{Username: "carol", Password: "longenough", Role: "viewer"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Create_WeakPassword(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			t.Fatal("Create should not be called for an invalid payload")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateUserRequest{Username: "carol", Password: "short", Role: "viewer"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
