package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventease/internal/domain"
)

type stubVerifier struct {
	identity *domain.Identity
	err      error
}

func (s *stubVerifier) Verify(token string) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func TestRequireAuth(t *testing.T) {
	identity := &domain.Identity{UserID: "user-1", Role: domain.RoleEventOwner}

	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
	}{
		{name: "missing header", header: "", verifier: &stubVerifier{identity: identity}, wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", header: "Basic abc123", verifier: &stubVerifier{identity: identity}, wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", verifier: &stubVerifier{identity: identity}, wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", verifier: &stubVerifier{err: errors.New("invalid token")}, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", verifier: &stubVerifier{identity: identity}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Identity
			handler := RequireAuth(tt.verifier)(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK {
				if seen == nil || seen.UserID != "user-1" {
					t.Errorf("expected identity in context, got %+v", seen)
				}
			} else if seen != nil {
				t.Error("handler ran despite rejected auth")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *domain.Identity
		allowed    []domain.Role
		wantStatus int
	}{
		{name: "no identity", identity: nil, allowed: []domain.Role{domain.RoleAdmin}, wantStatus: http.StatusUnauthorized},
		{name: "role not allowed", identity: &domain.Identity{UserID: "u", Role: domain.RoleEventOwner}, allowed: []domain.Role{domain.RoleAdmin}, wantStatus: http.StatusForbidden},
		{name: "role allowed", identity: &domain.Identity{UserID: "u", Role: domain.RoleAdmin}, allowed: []domain.Role{domain.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "any of several roles", identity: &domain.Identity{UserID: "u", Role: domain.RoleStaff}, allowed: []domain.Role{domain.RoleAdmin, domain.RoleStaff}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.allowed...)(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.identity != nil {
				req = req.WithContext(SetIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
