package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventease/internal/delivery/http/helpers"
	"eventease/internal/domain"
)

type mockAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (m *mockAuthService) Register(ctx context.Context, email, password, firstName, lastName string, role domain.Role) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAuthService) CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func TestAuthController_Register_Success(t *testing.T) {
	ctrl := NewAuthController(testControllerLogger(), &mockAuthService{
		token: "signed-token",
		user:  &domain.User{ID: "u1", Email: "ada@example.com"},
	})

	body := `{"email":"ada@example.com","password":"password123","first_name":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Token != "signed-token" || resp.Data.TokenType != "Bearer" {
		t.Errorf("unexpected session payload: %+v", resp.Data)
	}
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	ctrl := NewAuthController(testControllerLogger(), &mockAuthService{err: domain.ErrDuplicateEmail})

	body := `{"email":"ada@example.com","password":"password123","first_name":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestAuthController_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"password":"password123","first_name":"Ada"}`},
		{name: "bad email", body: `{"email":"nope","password":"password123","first_name":"Ada"}`},
		{name: "short password", body: `{"email":"ada@example.com","password":"short","first_name":"Ada"}`},
		{name: "missing first name", body: `{"email":"ada@example.com","password":"password123"}`},
		{name: "unknown role", body: `{"email":"ada@example.com","password":"password123","first_name":"Ada","role":"superuser"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testControllerLogger(), &mockAuthService{})

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.Register(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	ctrl := NewAuthController(testControllerLogger(), &mockAuthService{err: domain.ErrInvalidCredentials})

	body := `{"email":"ada@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", resp.Error)
	}
}

func TestAuthController_Me(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		ctrl := NewAuthController(testControllerLogger(), &mockAuthService{})

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()

		ctrl.Me(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := NewAuthController(testControllerLogger(), &mockAuthService{
			user: &domain.User{ID: "u1", Email: "ada@example.com"},
		})

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/auth/me", nil), domain.RoleEventOwner)
		w := httptest.NewRecorder()

		ctrl.Me(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})
}
