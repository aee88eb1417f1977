package domain

import "context"

// Identity errors.
var (
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrPasswordTooShort   = &Error{Code: EINVALID, Message: "Password must be at least 6 characters"}
	ErrPasswordMismatch   = &Error{Code: EINVALID, Message: "Passwords do not match"}
)

// User is the minimal authenticated-user record. It exists to pre-fill
// checkout contact fields; credentials are never verified against a backend.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SignupParams carries the fields collected by the signup form.
type SignupParams struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// IdentityService is the demo identity provider boundary.
type IdentityService interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Signup(ctx context.Context, params SignupParams) (*User, error)
}
