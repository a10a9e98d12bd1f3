package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	roomRepo "grandstay/database/repository/room"
	"grandstay/models"
	"grandstay/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomInUse is returned when deletion would orphan active bookings.
	ErrRoomInUse = errors.New("room has active bookings and cannot be deleted")
)

// CreateRoomInput carries the admin-facing room fields.
type CreateRoomInput struct {
	RoomNumber   string          `json:"roomNumber" binding:"required"`
	Type         models.RoomType `json:"type" binding:"required"`
	NightlyPrice float64         `json:"nightlyPrice" binding:"required"`
	Capacity     int             `json:"capacity" binding:"required"`
	Amenities    []string        `json:"amenities"`
	Description  string          `json:"description"`
	Images       []string        `json:"images"`
}

// RoomService manages the room inventory.
type RoomService interface {
	Create(ctx context.Context, in CreateRoomInput) (*models.Room, error)
	Update(ctx context.Context, id string, updates bson.M) (*models.Room, error)
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*models.Room, error)
	List(ctx context.Context, filter roomRepo.RoomFilter) ([]models.Room, error)

	// SetHousekeeping moves a room between cleaning states. Rooms marked dirty
	// are also flagged unavailable until cleaned.
	SetHousekeeping(ctx context.Context, id string, status models.HousekeepingStatus) (*models.Room, error)
}

// DefaultRoomService is the production implementation of RoomService.
type DefaultRoomService struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
}

func (s *DefaultRoomService) Create(ctx context.Context, in CreateRoomInput) (*models.Room, error) {
	if !models.ValidRoomType(in.Type) {
		return nil, fmt.Errorf("unknown room type %q", in.Type)
	}
	if in.NightlyPrice <= 0 {
		return nil, fmt.Errorf("nightly price must be positive")
	}
	if in.Capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	now := time.Now()
	room := &models.Room{
		ID:           uuid.NewString(),
		RoomNumber:   in.RoomNumber,
		Type:         in.Type,
		NightlyPrice: in.NightlyPrice,
		Capacity:     in.Capacity,
		Amenities:    in.Amenities,
		Available:    true,
		Housekeeping: models.HousekeepingClean,
		Description:  in.Description,
		Images:       in.Images,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Rooms.Create(room); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("room created",
		zap.String("roomId", room.ID), zap.String("roomNumber", room.RoomNumber))
	return room, nil
}

// Update applies a partial update. Type and housekeeping values are validated
// when present; other fields pass through as-is.
func (s *DefaultRoomService) Update(ctx context.Context, id string, updates bson.M) (*models.Room, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t, ok := updates["type"].(string); ok && !models.ValidRoomType(models.RoomType(t)) {
		return nil, fmt.Errorf("unknown room type %q", t)
	}
	if hk, ok := updates["housekeeping"].(string); ok && !models.ValidHousekeepingStatus(models.HousekeepingStatus(hk)) {
		return nil, fmt.Errorf("unknown housekeeping status %q", hk)
	}
	if price, ok := updates["nightly_price"].(float64); ok && price <= 0 {
		return nil, fmt.Errorf("nightly price must be positive")
	}
	if capacity, ok := updates["capacity"].(int); ok && capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	updates["updated_at"] = time.Now()
	if err := s.Rooms.UpdateSetDocument(id, updates); err != nil {
		return nil, err
	}
	return s.Rooms.GetByID(room.ID)
}

// Delete removes a room, refusing while any confirmed or checked-in booking
// still references it.
func (s *DefaultRoomService) Delete(ctx context.Context, id string) error {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.Bookings.CountActiveForRoom(room.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: %d active bookings", ErrRoomInUse, active)
	}
	if err := s.Rooms.Delete(room.ID); err != nil {
		return err
	}
	utils.GetLogger().Info("room deleted", zap.String("roomId", room.ID))
	return nil
}

func (s *DefaultRoomService) GetByID(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.Rooms.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *DefaultRoomService) List(ctx context.Context, filter roomRepo.RoomFilter) ([]models.Room, error) {
	return s.Rooms.GetAll(filter)
}

func (s *DefaultRoomService) SetHousekeeping(ctx context.Context, id string, status models.HousekeepingStatus) (*models.Room, error) {
	if !models.ValidHousekeepingStatus(status) {
		return nil, fmt.Errorf("unknown housekeeping status %q", status)
	}
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := bson.M{"housekeeping": status, "updated_at": time.Now()}
	switch status {
	case models.HousekeepingDirty, models.HousekeepingInProgress:
		updates["available"] = false
	case models.HousekeepingClean:
		updates["available"] = true
	}
	if err := s.Rooms.UpdateSetDocument(room.ID, updates); err != nil {
		return nil, err
	}
	return s.Rooms.GetByID(room.ID)
}
