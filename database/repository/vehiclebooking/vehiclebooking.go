package vehicleBookingRepo

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

// VehicleBookingRepository defines methods for vehicle booking data access.
type VehicleBookingRepository interface {
	GetByID(id string) (*models.VehicleBooking, error)
	GetAll() ([]models.VehicleBooking, error)
	GetByUser(userID string) ([]models.VehicleBooking, error)
	// GetByVehicle returns every booking of the vehicle regardless of status.
	GetByVehicle(vehicleID string) ([]models.VehicleBooking, error)
	Create(b *models.VehicleBooking) error
	// Replace stores the whole record, matched by id.
	Replace(b *models.VehicleBooking) error
	DeleteByVehicle(vehicleID string) (int64, error)
	Count() (int64, error)
}

type mongoVehicleBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoVehicleBookingRepo() VehicleBookingRepository {
	repo := &mongoVehicleBookingRepo{coll: database.DB().Collection("vehicle_bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("vehicle_bookings: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *mongoVehicleBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// calendar and conflict lookups
		{
			Keys:    bson.D{{Key: "vehicle_id", Value: 1}, {Key: "status", Value: 1}, {Key: "from_date", Value: 1}},
			Options: options.Index().SetName("vehicle_status_from_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoVehicleBookingRepo) GetByID(id string) (*models.VehicleBooking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.VehicleBooking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle booking with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vehicle booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoVehicleBookingRepo) find(filter bson.M) ([]models.VehicleBooking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vehicle bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.VehicleBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoVehicleBookingRepo) GetAll() ([]models.VehicleBooking, error) {
	return r.find(bson.M{})
}

func (r *mongoVehicleBookingRepo) GetByUser(userID string) ([]models.VehicleBooking, error) {
	return r.find(bson.M{"user_id": userID})
}

func (r *mongoVehicleBookingRepo) GetByVehicle(vehicleID string) ([]models.VehicleBooking, error) {
	return r.find(bson.M{"vehicle_id": vehicleID})
}

func (r *mongoVehicleBookingRepo) Create(b *models.VehicleBooking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create vehicle booking: %w", err)
	}
	return nil
}

func (r *mongoVehicleBookingRepo) Replace(b *models.VehicleBooking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	b.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": b.ID}, b)
	if err != nil {
		return fmt.Errorf("failed to update vehicle booking with id %s: %w", b.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle booking with id %s: %w", b.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoVehicleBookingRepo) DeleteByVehicle(vehicleID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings of vehicle %s: %w", vehicleID, err)
	}
	return result.DeletedCount, nil
}

func (r *mongoVehicleBookingRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
