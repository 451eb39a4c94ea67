package vehicleRepo

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

// VehicleRepository defines methods for vehicle data access.
type VehicleRepository interface {
	GetByID(id string) (*models.Vehicle, error)
	GetAll() ([]models.Vehicle, error)
	GetByIDs(ids []string) ([]models.Vehicle, error)
	Create(v *models.Vehicle) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	Count() (int64, error)
}

type mongoVehicleRepo struct {
	coll *mongo.Collection
}

func NewMongoVehicleRepo() VehicleRepository {
	repo := &mongoVehicleRepo{coll: database.DB().Collection("vehicles")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("vehicles: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *mongoVehicleRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var v models.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vehicle with id %s: %w", id, err)
	}
	return &v, nil
}

func (r *mongoVehicleRepo) find(filter bson.M) ([]models.Vehicle, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *mongoVehicleRepo) GetAll() ([]models.Vehicle, error) {
	return r.find(bson.M{})
}

func (r *mongoVehicleRepo) GetByIDs(ids []string) ([]models.Vehicle, error) {
	if len(ids) == 0 {
		return []models.Vehicle{}, nil
	}
	return r.find(bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoVehicleRepo) Create(v *models.Vehicle) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	v.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *mongoVehicleRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update vehicle with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoVehicleRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoVehicleRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
