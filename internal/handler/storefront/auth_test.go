package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rowanhale/vitrine/internal/domain"
	"github.com/rowanhale/vitrine/internal/service"
)

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(service.NewIdentityService(0))

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:           "success",
			body:           `{"email": "jane@example.com", "password": "hunter22"}`,
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				if !strings.Contains(body, "jane@example.com") {
					t.Errorf("expected user email in body, got %s", body)
				}
			},
		},
		{
			name:           "empty credentials",
			body:           `{"email": "", "password": ""}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed json",
			body:           `{email`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Login(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.checkBody != nil {
				tt.checkBody(t, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	h := NewAuthHandler(service.NewIdentityService(0))

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"email": "new@example.com", "firstName": "New", "lastName": "User", "password": "secret1", "confirmPassword": "secret1"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "password mismatch",
			body:           `{"email": "new@example.com", "password": "secret1", "confirmPassword": "secret2"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password too short",
			body:           `{"email": "new@example.com", "password": "abc", "confirmPassword": "abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Signup(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

// mockIdentityService implements domain.IdentityService for failure injection
type mockIdentityService struct {
	loginFunc  func(ctx context.Context, email, password string) (*domain.User, error)
	signupFunc func(ctx context.Context, params domain.SignupParams) (*domain.User, error)
}

func (m *mockIdentityService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockIdentityService) Signup(ctx context.Context, params domain.SignupParams) (*domain.User, error) {
	if m.signupFunc != nil {
		return m.signupFunc(ctx, params)
	}
	return nil, domain.ErrInvalidCredentials
}

func TestAuthHandler_Login_InternalErrorIsGeneric(t *testing.T) {
	h := NewAuthHandler(&mockIdentityService{
		loginFunc: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.Internal(context.DeadlineExceeded, "identity.login", "identity backend timed out")
		},
	})

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email": "a@b.co", "password": "x"}`))
	w := httptest.NewRecorder()
	h.Login(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "timed out") {
		t.Error("internal error details leaked to the client")
	}
}
