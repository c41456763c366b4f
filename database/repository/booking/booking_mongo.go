package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"soupbarber/database"
	"soupbarber/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.Database().Collection(CollectionName),
	}
}

// GetBookedTimes fetches the time labels of bookings dated within [start, end].
func (r *mongoBookingRepo) GetBookedTimes(ctx context.Context, start, end time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetProjection(bson.M{"time": 1, "_id": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	times := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			Time string `bson:"time"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		times = append(times, doc.Time)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return times, nil
}

// CreateBooking inserts a new booking document. The unique slotKey index
// turns a concurrent double booking into ErrDuplicateSlot.
func (r *mongoBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the booking queries rely on.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slotKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slot_key"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// EnsureIndexes creates indexes when repo is, or wraps, the Mongo backend.
// Other backends are left untouched.
func EnsureIndexes(ctx context.Context, repo BookingRepository) error {
	for repo != nil {
		switch r := repo.(type) {
		case *mongoBookingRepo:
			return r.EnsureIndexes(ctx)
		case interface{ Unwrap() BookingRepository }:
			repo = r.Unwrap()
		default:
			return nil
		}
	}
	return nil
}
