package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs fn inside a Mongo session transaction.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateIfAvailable checks the overlap invariant and inserts the booking as a
// single atomic unit, so two concurrent requests for the same room cannot both
// pass the availability check before either commits.
func (r *MongoBookingRepo) CreateIfAvailable(ctx context.Context, b *models.Booking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(b.RoomID, b.CheckIn, b.CheckOut, ""))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrRoomConflict
		}
		if _, err := r.coll.InsertOne(sc, b); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
	if err == ErrRoomConflict {
		return err
	}
	if err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// ConfirmIfAvailable re-checks the overlap invariant and flips the booking to
// confirmed within one transaction. A booking created while this one sat
// pending may have claimed the dates in the meantime.
func (r *MongoBookingRepo) ConfirmIfAvailable(ctx context.Context, id string) error {
	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var b models.Booking
		if err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&b); err != nil {
			return fmt.Errorf("failed to fetch booking %s: %w", id, err)
		}

		n, err := r.coll.CountDocuments(sc, overlapFilter(b.RoomID, b.CheckIn, b.CheckOut, b.ID))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrRoomConflict
		}

		update := bson.M{"$set": bson.M{"status": models.BookingConfirmed, "updated_at": time.Now()}}
		if _, err := r.coll.UpdateOne(sc, bson.M{"id": id}, update); err != nil {
			return fmt.Errorf("confirm update failed: %w", err)
		}
		return nil
	})
	if err == ErrRoomConflict {
		return err
	}
	if err != nil {
		return fmt.Errorf("confirm transaction failed: %w", err)
	}
	return nil
}
