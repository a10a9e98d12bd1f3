package user

import (
	"context"
	"fmt"
	"time"

	"grandstay/models"
	"grandstay/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenLifetime    = 72 * time.Hour
	verifyCodeLength = 6
	resetCodeLength  = 8
	verifyKeyPrefix  = "verify:"
	passwordResetKey = "pwreset:"
)

// Signup registers a new guest account and sends a verification code. The
// account cannot sign in until the code is redeemed.
func (s *DefaultUserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	existing, err := s.Users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	phone, err := utils.EncryptField(in.Phone)
	if err != nil {
		return nil, err
	}
	address, err := utils.EncryptField(in.Address)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &models.User{
		ID:                 uuid.NewString(),
		Username:           in.Username,
		Email:              in.Email,
		PasswordHash:       string(hash),
		Role:               models.RoleUser,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Phone:              phone,
		Address:            address,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}

	s.sendVerificationCode(ctx, u)
	return u, nil
}

func (s *DefaultUserService) sendVerificationCode(ctx context.Context, u *models.User) {
	logger := utils.GetLogger()

	code, err := utils.GenerateCode(verifyCodeLength)
	if err != nil {
		logger.Warn("failed to generate verification code", zap.String("userID", u.ID), zap.Error(err))
		return
	}
	if err := s.Codes.Put(ctx, verifyKeyPrefix+u.Email, code); err != nil {
		logger.Warn("failed to store verification code", zap.String("userID", u.ID), zap.Error(err))
		return
	}
	body := fmt.Sprintf("Welcome to GrandStay! Your verification code is %s. It expires in %d minutes.",
		code, int(s.Codes.TTL().Minutes()))
	s.Notifier.EmailUser(ctx, u.ID, "Verify your email address", body)
}

// VerifyEmail redeems a verification code and marks the account verified.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.EmailVerified {
		return nil
	}
	if err := s.Codes.Verify(ctx, verifyKeyPrefix+email, code); err != nil {
		return err
	}
	return s.Users.UpdateSetDocument(u.ID, bson.M{"email_verified": true, "updated_at": time.Now()})
}

// Signin authenticates by email and password and issues a JWT. The token's
// hash is persisted so Signout can revoke it server-side.
func (s *DefaultUserService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Blocked {
		return nil, ErrAccountBlocked
	}
	if !u.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := s.Users.UpdateSetDocument(u.ID, bson.M{"token_hash": utils.HashToken(token)}); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user signed in", zap.String("userID", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

// Signout clears the persisted token hash, invalidating the active session.
func (s *DefaultUserService) Signout(ctx context.Context, userID string) error {
	return s.Users.UpdateSetDocument(userID, bson.M{"token_hash": ""})
}

// ForgotPassword issues a reset code to the account's email. Unknown emails
// are silently accepted so the endpoint cannot be used to probe accounts.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		utils.GetLogger().Debug("password reset requested for unknown email")
		return nil
	}

	code, err := utils.GenerateCode(resetCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	if err := s.Codes.Put(ctx, passwordResetKey+email, code); err != nil {
		return err
	}
	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes. "+
		"If you did not request this, you can ignore this email.",
		code, int(s.Codes.TTL().Minutes()))
	s.Notifier.EmailUser(ctx, u.ID, "Password reset code", body)
	return nil
}

// ResetPassword redeems a reset code and replaces the password. Any active
// session is revoked.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if err := s.Codes.Verify(ctx, passwordResetKey+email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	update := bson.M{
		"password_hash": string(hash),
		"token_hash":    "",
		"updated_at":    time.Now(),
	}
	if err := s.Users.UpdateSetDocument(u.ID, update); err != nil {
		return err
	}

	s.Notifier.EmailUser(ctx, u.ID, "Password changed",
		"Your account password was just changed. If this was not you, contact support immediately.")
	return nil
}
