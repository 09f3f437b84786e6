// internal/interface/repository/offer_repo.go
package repository

import (
	"context"
	"fmt"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOfferRepository implements the OfferRepository interface
type MongoOfferRepository struct {
	collection *mongo.Collection
}

// NewMongoOfferRepository creates a new MongoDB offer inbox repository
func NewMongoOfferRepository(db *mongo.Database) repository.OfferRepository {
	collection := db.Collection("offerInbox")

	// Create indexes for better performance
	ctx := context.Background()

	offerIDIndex := mongo.IndexModel{
		Keys:    bson.M{"offerId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on processStatus for finding offers by status
	processStatusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}

	// Compound index for finding unprocessed offers efficiently
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "fetchedAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		offerIDIndex,
		processStatusIndex,
		unprocessedIndex,
	})

	return &MongoOfferRepository{
		collection: collection,
	}
}

// SaveFetched parks fetched offers in the inbox with pending status. An
// offer already present gets its payload refreshed without resetting status
// or fetchedAt, so re-fetching stays idempotent.
func (r *MongoOfferRepository) SaveFetched(ctx context.Context, offers []*entity.FlightOffer) (int, error) {
	stored := 0

	for _, offer := range offers {
		update := bson.M{
			"$set": bson.M{
				"offer": offer,
			},
			"$setOnInsert": bson.M{
				"offerId":       offer.ID,
				"fetchedAt":     time.Now(),
				"processStatus": entity.OfferStatusPending,
			},
		}

		opts := options.Update().SetUpsert(true)
		result, err := r.collection.UpdateOne(ctx, bson.M{"offerId": offer.ID}, update, opts)
		if err != nil {
			return stored, fmt.Errorf("failed to store offer %s: %w", offer.ID, err)
		}

		if result.UpsertedCount > 0 {
			stored++
		}
	}

	return stored, nil
}

// FindUnprocessed finds pending offers, oldest first
func (r *MongoOfferRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.StoredOffer, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.OfferStatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "fetchedAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []*entity.StoredOffer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

// MarkProcessed marks an offer as processed or failed with an error detail
func (r *MongoOfferRepository) MarkProcessed(ctx context.Context, offerID, status, errorDetail string) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
			"processedAt":   time.Now(),
		},
	}

	if errorDetail != "" {
		update["$set"].(bson.M)["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"offerId": offerID},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to mark offer as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no offer found with offerId: %s", offerID)
	}

	return nil
}
