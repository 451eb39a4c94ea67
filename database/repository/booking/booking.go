package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tourbook/database"
	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BookingRepository defines methods for tour booking data access.
type BookingRepository interface {
	GetByID(id string) (*models.TourBooking, error)
	GetAll() ([]models.TourBooking, error)
	GetByUser(userID string) ([]models.TourBooking, error)
	// HasConfirmed reports whether the user holds a confirmed booking of the tour.
	HasConfirmed(userID, tourID string) (bool, error)
	Create(b *models.TourBooking) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	// MarkCancelled flips a booking to cancelled only if it is not already;
	// it returns false when another request got there first.
	MarkCancelled(id string) (bool, error)
	DeleteByTour(tourID string) (int64, error)
	Count() (int64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("bookings: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *mongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "tour_id", Value: 1}, {Key: "booking_status", Value: 1}}, Options: options.Index().SetName("user_tour_status_idx")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(id string) (*models.TourBooking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.TourBooking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) find(filter bson.M) ([]models.TourBooking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.TourBooking{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

func (r *mongoBookingRepo) GetAll() ([]models.TourBooking, error) {
	return r.find(bson.M{})
}

func (r *mongoBookingRepo) GetByUser(userID string) ([]models.TourBooking, error) {
	return r.find(bson.M{"user_id": userID})
}

func (r *mongoBookingRepo) HasConfirmed(userID, tourID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"user_id":        userID,
		"tour_id":        tourID,
		"booking_status": models.BookingConfirmed,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up confirmed booking: %w", err)
	}
	return n > 0, nil
}

func (r *mongoBookingRepo) Create(b *models.TourBooking) error {
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

func (r *mongoBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range updateDoc {
		set[k] = v
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoBookingRepo) MarkCancelled(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "booking_status": bson.M{"$ne": models.BookingCancelled}}
	update := bson.M{"$set": bson.M{"booking_status": models.BookingCancelled, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking with id %s: %w", id, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *mongoBookingRepo) DeleteByTour(tourID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"tour_id": tourID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings of tour %s: %w", tourID, err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBookingRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
