package tourRepo

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

type mongoTourRepo struct {
	coll *mongo.Collection
}

func NewMongoTourRepo() TourRepository {
	repo := &mongoTourRepo{coll: database.DB().Collection("tours")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("tours: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *mongoTourRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "destination_id", Value: 1}}, Options: options.Index().SetName("destination_idx")},
		{Keys: bson.D{{Key: "departure_dates.id", Value: 1}}, Options: options.Index().SetName("departure_id_idx")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoTourRepo) GetByID(id string) (*models.Tour, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var t models.Tour
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("tour with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch tour with id %s: %w", id, err)
	}
	return &t, nil
}

func (r *mongoTourRepo) find(filter bson.M) ([]models.Tour, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tours: %w", err)
	}
	defer cursor.Close(ctx)

	tours := []models.Tour{}
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}
	return tours, nil
}

func (r *mongoTourRepo) GetAll() ([]models.Tour, error) {
	return r.find(bson.M{})
}

func (r *mongoTourRepo) GetByIDs(ids []string) ([]models.Tour, error) {
	if len(ids) == 0 {
		return []models.Tour{}, nil
	}
	return r.find(bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoTourRepo) GetByDestination(destinationID string) ([]models.Tour, error) {
	return r.find(bson.M{"destination_id": destinationID})
}

func (r *mongoTourRepo) CountByDestination() (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$destination_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count tours per destination: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		DestinationID string `bson:"_id"`
		Count         int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode tour counts: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.DestinationID] = row.Count
	}
	return counts, nil
}

func (r *mongoTourRepo) GetByDepartureID(departureID string) (*models.Tour, *models.DepartureDate, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var t models.Tour
	if err := r.coll.FindOne(ctx, bson.M{"departure_dates.id": departureID}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, fmt.Errorf("tour date with id %s: %w", departureID, repository.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to fetch tour date with id %s: %w", departureID, err)
	}
	for i := range t.DepartureDates {
		if t.DepartureDates[i].ID == departureID {
			return &t, &t.DepartureDates[i], nil
		}
	}
	return nil, nil, fmt.Errorf("tour date with id %s: %w", departureID, repository.ErrNotFound)
}

func (r *mongoTourRepo) ReserveSeats(departureID string, n int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	// The $elemMatch guard and the positional $inc run as one document update,
	// so two bookers can never both take the last seats.
	filter := bson.M{
		"departure_dates": bson.M{
			"$elemMatch": bson.M{
				"id":              departureID,
				"available_seats": bson.M{"$gte": n},
			},
		},
	}
	update := bson.M{"$inc": bson.M{"departure_dates.$.available_seats": -n}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve seats on %s: %w", departureID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotEnoughSeats
	}
	return nil
}

func (r *mongoTourRepo) ReleaseSeats(departureID string, n int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"departure_dates.id": departureID}
	update := bson.M{"$inc": bson.M{"departure_dates.$.available_seats": n}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release seats on %s: %w", departureID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("tour date with id %s: %w", departureID, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoTourRepo) Create(t *models.Tour) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	t.CreatedAt = time.Now()
	if t.DepartureDates == nil {
		t.DepartureDates = []models.DepartureDate{}
	}
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

func (r *mongoTourRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update tour with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("tour with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoTourRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tour with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("tour with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoTourRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
