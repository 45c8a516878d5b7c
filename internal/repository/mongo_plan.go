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

type MongoPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoPlanRepository(db *mongo.Database) *MongoPlanRepository {
	return &MongoPlanRepository{
		collection: db.Collection("plans"),
	}
}

func (r *MongoPlanRepository) GetByID(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	if planID == "" {
		return nil, domain.ErrInvalidID
	}

	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": planID, "user_id": userID}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *MongoPlanRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Plan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []*domain.Plan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode plans: %w", err)
	}
	return plans, nil
}

// Upsert stores the whole plan document, keeping the original creation time.
func (r *MongoPlanRepository) Upsert(ctx context.Context, plan *domain.Plan) error {
	if plan.ID == "" {
		return domain.ErrInvalidID
	}
	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": plan.ID, "user_id": plan.UserID}, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert plan: %w", err)
	}
	return nil
}

func (r *MongoPlanRepository) Delete(ctx context.Context, userID, planID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": planID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
