package userRepo

import (
	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error

	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByTokenHash(tokenHash string) (*models.User, error)
	GetAll() ([]models.User, error)
	GetByRoles(roles ...models.Role) ([]models.User, error)
}
