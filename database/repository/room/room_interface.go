package roomRepo

import (
	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RoomFilter narrows room listings.
type RoomFilter struct {
	Type          models.RoomType
	AvailableOnly bool
	MinCapacity   int
}

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	Create(room *models.Room) error
	Update(room *models.Room) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error

	GetByID(id string) (*models.Room, error)
	GetByNumber(roomNumber string) (*models.Room, error)
	GetAll(filter RoomFilter) ([]models.Room, error)
	Count() (int, error)
}
