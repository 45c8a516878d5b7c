package service

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockPlanRepo struct{ mock.Mock }

func (m *mockPlanRepo) GetByID(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, userID, planID)
	plan, _ := args.Get(0).(*domain.Plan)
	return plan, args.Error(1)
}

func (m *mockPlanRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Plan, error) {
	args := m.Called(ctx, userID)
	plans, _ := args.Get(0).([]*domain.Plan)
	return plans, args.Error(1)
}

func (m *mockPlanRepo) Upsert(ctx context.Context, plan *domain.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *mockPlanRepo) Delete(ctx context.Context, userID, planID string) error {
	return m.Called(ctx, userID, planID).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) ListAll(ctx context.Context, userID string) ([]*domain.SessionRecord, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]*domain.SessionRecord)
	return records, args.Error(1)
}

func (m *mockSessionRepo) LastForDay(ctx context.Context, userID, planID, weekID, dayID string) (*domain.SessionRecord, error) {
	args := m.Called(ctx, userID, planID, weekID, dayID)
	rec, _ := args.Get(0).(*domain.SessionRecord)
	return rec, args.Error(1)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, userID, id string) (*domain.SessionRecord, error) {
	args := m.Called(ctx, userID, id)
	rec, _ := args.Get(0).(*domain.SessionRecord)
	return rec, args.Error(1)
}

func (m *mockSessionRepo) Upsert(ctx context.Context, record *domain.SessionRecord) error {
	return m.Called(ctx, record).Error(0)
}

type mockPrefsRepo struct{ mock.Mock }

func (m *mockPrefsRepo) Load(ctx context.Context, userID string) (*domain.Preferences, error) {
	args := m.Called(ctx, userID)
	prefs, _ := args.Get(0).(*domain.Preferences)
	return prefs, args.Error(1)
}

func (m *mockPrefsRepo) Save(ctx context.Context, userID string, patch domain.PreferencesPatch) error {
	return m.Called(ctx, userID, patch).Error(0)
}
