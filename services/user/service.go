package user

import (
	"context"
	"fmt"
	"time"

	userRepo "grandstay/database/repository/user"
	"grandstay/models"
	"grandstay/services/notification"
	"grandstay/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Users    userRepo.UserRepository
	Codes    *utils.CodeStore
	Notifier notification.Notifier
}

// GetProfile returns the account with encrypted fields decrypted for display.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	decryptContactFields(u)
	return u, nil
}

// UpdateProfile applies a partial update to the caller's own profile. Phone
// and address are re-encrypted before storage; role, email and password are
// not updatable here.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, updates bson.M) (*models.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	allowed := bson.M{}
	for _, field := range []string{"username", "first_name", "last_name"} {
		if v, ok := updates[field]; ok {
			allowed[field] = v
		}
	}
	for _, field := range []string{"phone", "address"} {
		if v, ok := updates[field].(string); ok {
			enc, err := utils.EncryptField(v)
			if err != nil {
				return nil, err
			}
			allowed[field] = enc
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	allowed["updated_at"] = time.Now()
	if err := s.Users.UpdateSetDocument(u.ID, allowed); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, u.ID)
}

// SetEmailNotifications toggles the email-notification preference.
func (s *DefaultUserService) SetEmailNotifications(ctx context.Context, userID string, enabled bool) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return s.Users.UpdateSetDocument(u.ID, bson.M{"email_notifications": enabled, "updated_at": time.Now()})
}

// ListUsers returns every account. Staff-only; contact fields stay encrypted.
func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.GetAll()
}

// SetBlocked blocks or unblocks an account. Blocking also revokes the active
// session so the next request fails authentication.
func (s *DefaultUserService) SetBlocked(ctx context.Context, userID string, blocked bool) (*models.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	update := bson.M{"blocked": blocked, "updated_at": time.Now()}
	if blocked {
		update["token_hash"] = ""
	}
	if err := s.Users.UpdateSetDocument(u.ID, update); err != nil {
		return nil, err
	}
	u.Blocked = blocked

	utils.GetLogger().Info("user block state changed",
		zap.String("userID", u.ID), zap.Bool("blocked", blocked))
	return u, nil
}

// SetRole changes an account's role. Superadmin-only at the route layer.
func (s *DefaultUserService) SetRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	// Re-issue forced on next request: the stored token still carries the old
	// role claim, so revoke the session along with the change.
	update := bson.M{"role": role, "token_hash": "", "updated_at": time.Now()}
	if err := s.Users.UpdateSetDocument(u.ID, update); err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

func decryptContactFields(u *models.User) {
	logger := utils.GetLogger()
	if u.Phone != "" {
		if plain, err := utils.DecryptField(u.Phone); err == nil {
			u.Phone = plain
		} else {
			logger.Warn("failed to decrypt phone field", zap.String("userID", u.ID), zap.Error(err))
		}
	}
	if u.Address != "" {
		if plain, err := utils.DecryptField(u.Address); err == nil {
			u.Address = plain
		} else {
			logger.Warn("failed to decrypt address field", zap.String("userID", u.ID), zap.Error(err))
		}
	}
}
