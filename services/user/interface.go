package user

import (
	"context"
	"errors"

	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when signup reuses a registered email.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountBlocked is returned when a blocked account tries to sign in.
	ErrAccountBlocked = errors.New("account is blocked")

	// ErrEmailNotVerified is returned when sign-in is attempted before the
	// verification code was redeemed.
	ErrEmailNotVerified = errors.New("email address is not verified")
)

// SignupInput carries the registration fields.
type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// AuthResult is returned on successful sign-in.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages accounts, authentication and profile state.
type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*models.User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	Signin(ctx context.Context, email, password string) (*AuthResult, error)
	Signout(ctx context.Context, userID string) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error

	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, updates bson.M) (*models.User, error)
	SetEmailNotifications(ctx context.Context, userID string, enabled bool) error

	// Admin-side account management.
	ListUsers(ctx context.Context) ([]models.User, error)
	SetBlocked(ctx context.Context, userID string, blocked bool) (*models.User, error)
	SetRole(ctx context.Context, userID string, role models.Role) (*models.User, error)
}
