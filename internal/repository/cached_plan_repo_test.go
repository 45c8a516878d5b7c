package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPlanStore struct {
	plans map[string]*domain.Plan
	reads int
}

func (s *countingPlanStore) GetByID(_ context.Context, userID, planID string) (*domain.Plan, error) {
	s.reads++
	p, ok := s.plans[planID]
	if !ok || p.UserID != userID {
		return nil, domain.ErrPlanNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *countingPlanStore) ListByUser(_ context.Context, userID string) ([]*domain.Plan, error) {
	s.reads++
	var out []*domain.Plan
	for _, p := range s.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *countingPlanStore) Upsert(_ context.Context, plan *domain.Plan) error {
	s.plans[plan.ID] = plan
	return nil
}

func (s *countingPlanStore) Delete(_ context.Context, userID, planID string) error {
	if _, ok := s.plans[planID]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(s.plans, planID)
	return nil
}

func TestCachedPlanRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	store := &countingPlanStore{plans: map[string]*domain.Plan{
		"p1": {ID: "p1", UserID: "u1", Name: "Push Pull Legs"},
	}}
	repo := NewCachedPlanRepository(store, cache, time.Minute)

	first, err := repo.GetByID(ctx, "u1", "p1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, "Push Pull Legs", second.Name)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.reads)
}

func TestCachedPlanRepository_UpsertInvalidates(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	store := &countingPlanStore{plans: map[string]*domain.Plan{
		"p1": {ID: "p1", UserID: "u1", Name: "Old"},
	}}
	repo := NewCachedPlanRepository(store, cache, 0)

	_, err := repo.GetByID(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(planKey("u1", "p1")))

	require.NoError(t, repo.Upsert(ctx, &domain.Plan{ID: "p1", UserID: "u1", Name: "New"}))
	assert.False(t, mr.Exists(planKey("u1", "p1")))

	got, err := repo.GetByID(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 2, store.reads)
}

func TestCachedPlanRepository_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	store := &countingPlanStore{plans: map[string]*domain.Plan{}}
	repo := NewCachedPlanRepository(store, cache, time.Minute)

	_, err := repo.GetByID(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	assert.False(t, mr.Exists(planKey("u1", "missing")))

	assert.ErrorIs(t, repo.Delete(ctx, "u1", "missing"), domain.ErrPlanNotFound)
}
