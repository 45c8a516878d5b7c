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

type MongoPreferencesRepository struct {
	collection *mongo.Collection
}

func NewMongoPreferencesRepository(db *mongo.Database) *MongoPreferencesRepository {
	return &MongoPreferencesRepository{
		collection: db.Collection("preferences"),
	}
}

func (r *MongoPreferencesRepository) Load(ctx context.Context, userID string) (*domain.Preferences, error) {
	var prefs domain.Preferences
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&prefs)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

// Save applies a partial update. Only the non-nil parts of the patch are
// written, so a streak reset never clobbers a concurrent config change.
func (r *MongoPreferencesRepository) Save(ctx context.Context, userID string, patch domain.PreferencesPatch) error {
	set := bson.M{"updated_at": time.Now()}
	if patch.Streak != nil {
		set["streak"] = patch.Streak
	}
	if patch.StreakState != nil {
		set["streak_state"] = patch.StreakState
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
