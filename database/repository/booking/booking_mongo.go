package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "check_in", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document without an availability guard.
// Callers on the request path should use CreateIfAvailable instead.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Update modifies an existing booking document.
func (r *MongoBookingRepo) Update(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	b.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": b.ID}, bson.M{"$set": b})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", b.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", b.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a booking document.
func (r *MongoBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// GetAll retrieves bookings matching the given filter, newest first.
func (r *MongoBookingRepo) GetAll(filter ListFilter) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.RoomID != "" {
		query["room_id"] = filter.RoomID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		rangeQuery := bson.M{}
		if !filter.From.IsZero() {
			rangeQuery["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			rangeQuery["$lt"] = filter.To
		}
		query["check_in"] = rangeQuery
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// overlapFilter builds the half-open interval overlap query for a room:
// an active booking conflicts when check_in < end AND check_out > start.
func overlapFilter(roomID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"room_id":   roomID,
		"status":    bson.M{"$in": []models.BookingStatus{models.BookingConfirmed, models.BookingCheckedIn}},
		"check_in":  bson.M{"$lt": end},
		"check_out": bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// FindOverlapping returns the active bookings conflicting with [start, end).
func (r *MongoBookingRepo) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, overlapFilter(roomID, start, end, excludeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}
	return bookings, nil
}

// CountActiveForRoom counts confirmed or checked-in bookings for a room.
func (r *MongoBookingRepo) CountActiveForRoom(roomID string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"room_id": roomID,
		"status":  bson.M{"$in": []models.BookingStatus{models.BookingConfirmed, models.BookingCheckedIn}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings for room %s: %w", roomID, err)
	}
	return int(n), nil
}

// FindIntersecting returns bookings in the given statuses whose stay
// intersects [from, to).
func (r *MongoBookingRepo) FindIntersecting(from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"status":    bson.M{"$in": statuses},
		"check_in":  bson.M{"$lt": to},
		"check_out": bson.M{"$gt": from},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query intersecting bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode intersecting bookings: %w", err)
	}
	return bookings, nil
}

// FindCheckedInEndingBy returns checked-in bookings whose check-out date is on
// or before the given day. Used by the nightly housekeeping sweep.
func (r *MongoBookingRepo) FindCheckedInEndingBy(day time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"status":    models.BookingCheckedIn,
		"check_out": bson.M{"$lte": day},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query ending bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode ending bookings: %w", err)
	}
	return bookings, nil
}

// FindStalePending returns pending bookings whose check-in date has passed.
func (r *MongoBookingRepo) FindStalePending(checkInBefore time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"status":   models.BookingPending,
		"check_in": bson.M{"$lt": checkInBefore},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query stale pending bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode stale pending bookings: %w", err)
	}
	return bookings, nil
}
