package hotelRepo

import (
	"context"
	"errors"
	"fmt"

	"hotelsa/database/repository/shared"
	"hotelsa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHotelRepo implements HotelRepository using MongoDB.
type MongoHotelRepo struct {
	coll *mongo.Collection
}

// NewMongoHotelRepo creates a HotelRepository on the "hotels" collection.
func NewMongoHotelRepo(db *mongo.Database) HotelRepository {
	repo := &MongoHotelRepo{coll: db.Collection("hotels")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create hotel indexes: %v\n", err)
	}
	return repo
}

func (r *MongoHotelRepo) ensureIndexes() error {
	ctx, cancel := shared.WithTimeout(context.Background(), shared.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	ctx, cancel := shared.WithTimeout(ctx, shared.ReadTimeout)
	defer cancel()

	var hotel models.Hotel
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("hotel %s: %w", id, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch hotel with id %s: %w", id, err)
	}
	return &hotel, nil
}

func (r *MongoHotelRepo) List(ctx context.Context, sortBy models.HotelSort, limit int) ([]models.Hotel, error) {
	ctx, cancel := shared.WithTimeout(ctx, shared.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(sortDocument(sortBy))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []models.Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *MongoHotelRepo) Upsert(ctx context.Context, hotel *models.Hotel) error {
	ctx, cancel := shared.WithTimeout(ctx, shared.WriteTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": hotel.ID}, hotel, opts); err != nil {
		return fmt.Errorf("failed to upsert hotel %s: %w", hotel.ID, err)
	}
	return nil
}

func sortDocument(sortBy models.HotelSort) bson.D {
	if sortBy == models.SortByPrice {
		return bson.D{{Key: "price", Value: 1}, {Key: "id", Value: 1}}
	}
	return bson.D{{Key: "rating", Value: -1}, {Key: "id", Value: 1}}
}
