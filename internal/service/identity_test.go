package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rowanhale/vitrine/internal/domain"
)

func TestIdentityService_Login(t *testing.T) {
	svc := NewIdentityService(0)

	user, err := svc.Login(context.Background(), "jane@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "1" {
		t.Errorf("expected demo user ID 1, got %q", user.ID)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("expected the submitted email echoed back, got %q", user.Email)
	}
	if user.FirstName != "John" || user.LastName != "Doe" {
		t.Errorf("expected the demo profile, got %s %s", user.FirstName, user.LastName)
	}
}

func TestIdentityService_Login_EmptyCredentials(t *testing.T) {
	svc := NewIdentityService(0)

	tests := []struct {
		name            string
		email, password string
	}{
		{"empty email", "", "hunter22"},
		{"empty password", "jane@example.com", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tt.email, tt.password); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestIdentityService_Login_Cancelled(t *testing.T) {
	svc := NewIdentityService(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := svc.Login(ctx, "jane@example.com", "hunter22"); err == nil {
		t.Error("expected error when the round trip is cancelled")
	}
}

func TestIdentityService_Signup(t *testing.T) {
	svc := NewIdentityService(0)

	user, err := svc.Signup(context.Background(), domain.SignupParams{
		Email:           "new@example.com",
		FirstName:       "New",
		LastName:        "User",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.ID == "" || user.ID == "1" {
		t.Errorf("expected a freshly minted user ID, got %q", user.ID)
	}
	if user.Email != "new@example.com" || user.FirstName != "New" {
		t.Errorf("expected signup fields on the user, got %+v", user)
	}
}

func TestIdentityService_Signup_PasswordRules(t *testing.T) {
	svc := NewIdentityService(0)

	_, err := svc.Signup(context.Background(), domain.SignupParams{
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}

	_, err = svc.Signup(context.Background(), domain.SignupParams{
		Email:           "new@example.com",
		Password:        "abc",
		ConfirmPassword: "abc",
	})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}
