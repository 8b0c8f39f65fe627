package repository

import (
	"context"
	"errors"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExtractionRepository implements the ExtractionRepository interface
type MongoExtractionRepository struct {
	collection *mongo.Collection
}

// NewMongoExtractionRepository creates a new MongoDB extraction archive
func NewMongoExtractionRepository(db *mongo.Database) repository.ExtractionRepository {
	collection := db.Collection("extractionLogs")

	// Create indexes for better performance
	ctx := context.Background()

	pnrIndex := mongo.IndexModel{
		Keys: bson.M{"pnr": 1},
	}
	statusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}
	receivedAtIndex := mongo.IndexModel{
		Keys: bson.M{"receivedAt": -1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		pnrIndex,
		statusIndex,
		receivedAtIndex,
	})

	return &MongoExtractionRepository{
		collection: collection,
	}
}

// Save archives a received extraction and returns the document id
func (r *MongoExtractionRepository) Save(ctx context.Context, log *entity.ExtractionLog) (string, error) {
	if log.ID == "" {
		log.ID = primitive.NewObjectID().Hex()
	}
	if log.ProcessStatus == "" {
		log.ProcessStatus = entity.StatusPending
	}
	if log.ReceivedAt.IsZero() {
		log.ReceivedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return "", err
	}
	return log.ID, nil
}

// MarkProcessed records the import outcome on an archived extraction
func (r *MongoExtractionRepository) MarkProcessed(ctx context.Context, id, status, action, reason, errorDetail string) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
			"importAction":  action,
			"importReason":  reason,
			"errorDetail":   errorDetail,
			"processedAt":   time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindByPNR lists archived extractions for a PNR, newest first
func (r *MongoExtractionRepository) FindByPNR(ctx context.Context, pnr string) ([]*entity.ExtractionLog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"pnr": pnr}, &options.FindOptions{
		Sort: bson.D{{Key: "receivedAt", Value: -1}},
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*entity.ExtractionLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
