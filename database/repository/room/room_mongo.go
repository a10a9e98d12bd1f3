package roomRepo

import (
	"context"
	"fmt"
	"time"

	"grandstay/database"
	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRoomRepo implements RoomRepository using MongoDB.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo creates a new instance of RoomRepository using MongoDB.
func NewMongoRoomRepo() RoomRepository {
	coll := database.Collection("rooms")
	repo := &MongoRoomRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create room indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRoomRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "room_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new room document.
func (r *MongoRoomRepo) Create(room *models.Room) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("room number %s already exists", room.RoomNumber)
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// Update modifies an existing room document.
func (r *MongoRoomRepo) Update(room *models.Room) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	room.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": room.ID}, bson.M{"$set": room})
	if err != nil {
		return fmt.Errorf("failed to update room with id %s: %w", room.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("room with id %s not found", room.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a room document.
func (r *MongoRoomRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update room with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("room with id %s not found", id)
	}
	return nil
}

// Delete removes a room document by its ID.
func (r *MongoRoomRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete room with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("room with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a room by its unique ID.
func (r *MongoRoomRepo) GetByID(id string) (*models.Room, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch room with id %s: %w", id, err)
	}
	return &room, nil
}

// GetByNumber retrieves a room by its unique room number.
func (r *MongoRoomRepo) GetByNumber(roomNumber string) (*models.Room, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"room_number": roomNumber}).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch room %s: %w", roomNumber, err)
	}
	return &room, nil
}

// GetAll retrieves rooms matching the given filter.
func (r *MongoRoomRepo) GetAll(filter RoomFilter) ([]models.Room, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.AvailableOnly {
		query["available"] = true
	}
	if filter.MinCapacity > 0 {
		query["capacity"] = bson.M{"$gte": filter.MinCapacity}
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

// Count returns the total number of rooms.
func (r *MongoRoomRepo) Count() (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return int(n), nil
}
