package bookingRepo

import (
	"fmt"
	"time"

	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// createdWindow matches bookings created inside [from, to).
func createdWindow(from, to time.Time) bson.M {
	return bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
}

// paidWindow matches paid bookings created inside [from, to).
func paidWindow(from, to time.Time) bson.M {
	w := createdWindow(from, to)
	w["payment_status"] = models.PaymentPaid
	return w
}

func (r *MongoBookingRepo) aggregate(pipeline mongo.Pipeline, out any) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode aggregation results: %w", err)
	}
	return nil
}

// CountByStatus groups bookings created in the window by lifecycle status.
func (r *MongoBookingRepo) CountByStatus(from, to time.Time) ([]models.StatusCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: createdWindow(from, to)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	var out []models.StatusCount
	if err := r.aggregate(pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevenueByRoomType joins rooms and groups paid revenue by room category.
func (r *MongoBookingRepo) RevenueByRoomType(from, to time.Time) ([]models.RoomTypeRevenue, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: paidWindow(from, to)}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "rooms",
			"localField":   "room_id",
			"foreignField": "id",
			"as":           "room",
		}}},
		bson.D{{Key: "$unwind", Value: "$room"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$room.type",
			"revenue":  bson.M{"$sum": "$total_amount"},
			"bookings": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"revenue": -1}}},
	}

	var out []models.RoomTypeRevenue
	if err := r.aggregate(pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevenueByDay groups paid revenue by calendar day of check-in.
func (r *MongoBookingRepo) RevenueByDay(from, to time.Time) ([]models.DailyRevenue, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: paidWindow(from, to)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$check_in",
			}},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var out []models.DailyRevenue
	if err := r.aggregate(pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalRevenue sums paid booking amounts created in the window.
func (r *MongoBookingRepo) TotalRevenue(from, to time.Time) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: paidWindow(from, to)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}}},
	}

	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(pipeline, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

// TopCustomers ranks users by paid spend in the window.
func (r *MongoBookingRepo) TopCustomers(from, to time.Time, limit int) ([]models.TopCustomer, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: paidWindow(from, to)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$user_id",
			"spent":    bson.M{"$sum": "$total_amount"},
			"bookings": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"spent": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "id",
			"as":           "user",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"email": bson.M{"$arrayElemAt": bson.A{"$user.email", 0}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"user": 0}}},
	}

	var out []models.TopCustomer
	if err := r.aggregate(pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}
