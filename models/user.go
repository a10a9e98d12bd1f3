package models

import "time"

// Role is the fixed set of account roles. There is no runtime-mutable grant
// graph; capabilities per role live in services/access.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// User represents a hotel guest or staff account.
type User struct {
	ID           string `bson:"id" json:"id"`
	Username     string `bson:"username,omitempty" json:"username,omitempty"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash,omitempty" json:"-"` // empty for OAuth accounts
	Role         Role   `bson:"role" json:"role"`

	FirstName string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"lastName,omitempty"`

	// Phone and Address are stored AES-GCM encrypted; see utils/crypto.go.
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`

	Blocked            bool `bson:"blocked" json:"blocked"`
	EmailVerified      bool `bson:"email_verified" json:"emailVerified"`
	EmailNotifications bool `bson:"email_notifications" json:"emailNotifications"`

	TokenHash string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsStaff reports whether the account may perform admin-side operations.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
