// internal/interface/repository/run_report_repo.go
package repository

import (
	"context"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRunReportRepository implements the RunReportRepository interface
type MongoRunReportRepository struct {
	collection *mongo.Collection
}

// NewMongoRunReportRepository creates a new MongoDB run report repository
func NewMongoRunReportRepository(db *mongo.Database) repository.RunReportRepository {
	collection := db.Collection("runReports")

	startedAtIndex := mongo.IndexModel{
		Keys: bson.M{"startedAt": -1},
	}
	collection.Indexes().CreateOne(context.Background(), startedAtIndex)

	return &MongoRunReportRepository{
		collection: collection,
	}
}

// Save stores the report of one ingestion run
func (r *MongoRunReportRepository) Save(ctx context.Context, report *entity.RunReport) error {
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// FindRecent returns the most recent run reports, newest first
func (r *MongoRunReportRepository) FindRecent(ctx context.Context, limit int) ([]*entity.RunReport, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "startedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []*entity.RunReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}
