package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

const (
	planByIDKeyPrefix   = "plan:id:"
	planListKeyPrefix   = "plan:user:"
	defaultPlanCacheTTL = 5 * time.Minute
)

func planKey(userID, planID string) string {
	return fmt.Sprintf("%s%s:%s", planByIDKeyPrefix, userID, planID)
}

// CachedPlanRepository wraps a plan store with Redis caching. Plans are read
// on every ghost and merge request and change rarely.
type CachedPlanRepository struct {
	store domain.PlanRepository
	cache *RedisCacheRepository
	ttl   time.Duration
}

// NewCachedPlanRepository creates a new cached plan repository. A zero ttl
// uses the default.
func NewCachedPlanRepository(store domain.PlanRepository, cache *RedisCacheRepository, ttl time.Duration) *CachedPlanRepository {
	if ttl <= 0 {
		ttl = defaultPlanCacheTTL
	}
	return &CachedPlanRepository{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CachedPlanRepository) GetByID(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	key := planKey(userID, planID)

	var plan domain.Plan
	if err := r.cache.Get(ctx, key, &plan); err == nil {
		return &plan, nil
	}

	result, err := r.store.GetByID(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, r.ttl)
	return result, nil
}

func (r *CachedPlanRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Plan, error) {
	key := planListKeyPrefix + userID

	var plans []*domain.Plan
	if err := r.cache.Get(ctx, key, &plans); err == nil {
		return plans, nil
	}

	result, err := r.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, result, r.ttl)
	return result, nil
}

// Upsert writes through to the store and drops the cached copies.
func (r *CachedPlanRepository) Upsert(ctx context.Context, plan *domain.Plan) error {
	if err := r.store.Upsert(ctx, plan); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, planKey(plan.UserID, plan.ID), planListKeyPrefix+plan.UserID)
	return nil
}

func (r *CachedPlanRepository) Delete(ctx context.Context, userID, planID string) error {
	if err := r.store.Delete(ctx, userID, planID); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, planKey(userID, planID), planListKeyPrefix+userID)
	return nil
}
