package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testManager() *Manager {
	return NewManager("test-secret", "admin", "hunter2", time.Hour)
}

func TestLoginAndVerify(t *testing.T) {
	m := testManager()

	token, err := m.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	session, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if session.User != "admin" {
		t.Errorf("session user = %q, want %q", session.User, "admin")
	}
	if session.ExpiresAt.Before(time.Now()) {
		t.Error("session already expired")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := testManager()

	tests := []struct {
		name     string
		user     string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong user", "root", "hunter2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Login(tt.user, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", "admin", "hunter2", -time.Minute)

	token, err := m.IssueToken("admin")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := m.VerifyToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("VerifyToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", "admin", "hunter2", time.Hour).IssueToken("admin")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	m := NewManager("secret-b", "admin", "hunter2", time.Hour)
	if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	m := testManager()
	if _, err := m.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestMiddleware(t *testing.T) {
	m := testManager()
	token, err := m.IssueToken("admin")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	var gotUser string
	handler := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := SessionFrom(r.Context()); ok {
			gotUser = s.User
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	if gotUser != "admin" {
		t.Errorf("session user = %q, want %q", gotUser, "admin")
	}
}
