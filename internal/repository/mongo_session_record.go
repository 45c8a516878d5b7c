package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSessionRecordRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionRecordRepository(db *mongo.Database) *MongoSessionRecordRepository {
	return &MongoSessionRecordRepository{
		collection: db.Collection("session_records"),
	}
}

// ListAll returns every session of the user, newest date first. Dates are
// ISO-8601 strings, so the store order is only a hint; the history index
// re-sorts on parsed dates.
func (r *MongoSessionRecordRepository) ListAll(ctx context.Context, userID string) ([]*domain.SessionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.SessionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return records, nil
}

// LastForDay returns the most recent session logged against one plan day.
func (r *MongoSessionRecordRepository) LastForDay(ctx context.Context, userID, planID, weekID, dayID string) (*domain.SessionRecord, error) {
	filter := bson.M{
		"user_id": userID,
		"plan_id": planID,
		"week_id": weekID,
		"day_id":  dayID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "updated_at", Value: -1}})

	var record domain.SessionRecord
	err := r.collection.FindOne(ctx, filter, opts).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *MongoSessionRecordRepository) GetByID(ctx context.Context, userID, id string) (*domain.SessionRecord, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	var record domain.SessionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Upsert replaces the stored session with the same id or inserts it.
func (r *MongoSessionRecordRepository) Upsert(ctx context.Context, record *domain.SessionRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidID
	}
	record.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": record.ID, "user_id": record.UserID}, record, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by LastForDay and ListAll.
func (r *MongoSessionRecordRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "plan_id", Value: 1},
			{Key: "week_id", Value: 1},
			{Key: "day_id", Value: 1},
			{Key: "date", Value: -1},
		}},
	})
	return err
}
