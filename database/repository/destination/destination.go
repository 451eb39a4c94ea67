package destinationRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
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

// DestinationRepository defines methods for destination data access.
type DestinationRepository interface {
	GetByID(id string) (*models.Destination, error)
	GetAll() ([]models.Destination, error)
	GetByIDs(ids []string) ([]models.Destination, error)
	// Search matches q case-insensitively against name, description and city,
	// and country exactly. Empty arguments do not filter.
	Search(q, country string) ([]models.Destination, error)
	Create(d *models.Destination) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	Count() (int64, error)
}

type mongoDestinationRepo struct {
	coll *mongo.Collection
}

func NewMongoDestinationRepo() DestinationRepository {
	repo := &mongoDestinationRepo{coll: database.DB().Collection("destinations")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("destinations: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *mongoDestinationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "country", Value: 1}}, Options: options.Index().SetName("country_idx")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoDestinationRepo) GetByID(id string) (*models.Destination, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var d models.Destination
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("destination with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch destination with id %s: %w", id, err)
	}
	return &d, nil
}

func (r *mongoDestinationRepo) find(filter bson.M) ([]models.Destination, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve destinations: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Destination{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}
	return out, nil
}

func (r *mongoDestinationRepo) GetAll() ([]models.Destination, error) {
	return r.find(bson.M{})
}

func (r *mongoDestinationRepo) GetByIDs(ids []string) ([]models.Destination, error) {
	if len(ids) == 0 {
		return []models.Destination{}, nil
	}
	return r.find(bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoDestinationRepo) Search(q, country string) ([]models.Destination, error) {
	filter := bson.M{}
	if q = strings.TrimSpace(q); q != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"description": pattern},
			{"city": pattern},
		}
	}
	if country != "" {
		filter["country"] = country
	}
	return r.find(filter)
}

func (r *mongoDestinationRepo) Create(d *models.Destination) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	d.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	return nil
}

func (r *mongoDestinationRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update destination with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("destination with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoDestinationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete destination with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("destination with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoDestinationRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
