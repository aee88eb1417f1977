package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rowanhale/vitrine/internal/domain"
)

// identityService is the demo identity provider. Credentials are never
// verified against any backend; login resolves to a fixed demo user after
// a simulated round trip. It exists to pre-fill checkout contact fields.
type identityService struct {
	latency time.Duration
	now     func() time.Time
}

// NewIdentityService creates the demo identity provider. latency simulates
// the authentication round trip; pass zero in tests.
func NewIdentityService(latency time.Duration) domain.IdentityService {
	return &identityService{
		latency: latency,
		now:     time.Now,
	}
}

// Login returns the demo user for any non-empty credentials.
func (s *identityService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.User{
		ID:        "1",
		Email:     email,
		FirstName: "John",
		LastName:  "Doe",
	}, nil
}

// Signup validates the password rules and mints a new user record.
func (s *identityService) Signup(ctx context.Context, params domain.SignupParams) (*domain.User, error) {
	if params.Password != params.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if len(params.Password) < 6 {
		return nil, domain.ErrPasswordTooShort
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:        strconv.FormatInt(s.now().UnixMilli(), 10),
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	}, nil
}

func (s *identityService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.WrapError(ctx.Err(), domain.EINTERNAL, "identity.wait", "authentication interrupted")
	case <-timer.C:
		return nil
	}
}
