package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ghostTestPlan(fullBody bool) *domain.Plan {
	return &domain.Plan{
		ID:             "p1",
		UserID:         "u1",
		FullBodyGhosts: fullBody,
		Weeks: []domain.PlanWeek{
			{ID: "w1", Days: []domain.PlanDay{
				{ID: "w1-a", Name: "Day A", Items: []domain.PlanExercise{{ID: "i1", Exercise: squat, TargetSets: 2}}},
				{ID: "w1-b", Name: "Day B", Items: []domain.PlanExercise{{ID: "i2", Exercise: squat, TargetSets: 2}}},
			}},
			{ID: "w2", Days: []domain.PlanDay{
				{ID: "w2-a", Name: "Day A", Items: []domain.PlanExercise{{ID: "i3", Exercise: squat, TargetSets: 2}}},
			}},
		},
	}
}

func ghostHistory() []*domain.SessionRecord {
	return []*domain.SessionRecord{
		{ID: "s3", PlanID: "p1", WeekID: "w1", DayID: "w1-b", Date: "2024-01-10", Entries: []domain.SessionEntry{entry(squat, loggedSet(0, 140, 3))}},
		{ID: "s2", PlanID: "p1", WeekID: "w1", DayID: "w1-a", Date: "2024-01-08", Entries: []domain.SessionEntry{entry(squat, loggedSet(0, 120, 5))}},
		{ID: "s1", PlanID: "p1", WeekID: "w2", DayID: "w2-a", Date: "2024-01-01", Entries: []domain.SessionEntry{entry(squat, loggedSet(0, 100, 5), loggedSet(1, 100, 5))}},
	}
}

func TestGhostService_DayGhosts_DefaultMode(t *testing.T) {
	ctx := context.Background()
	plans := &mockPlanRepo{}
	sessions := &mockSessionRepo{}
	plans.On("GetByID", mock.Anything, "u1", "p1").Return(ghostTestPlan(false), nil)
	sessions.On("ListAll", mock.Anything, "u1").Return(ghostHistory(), nil)
	sessions.On("LastForDay", mock.Anything, "u1", "p1", "w2", "w2-a").Return(nil, domain.ErrSessionNotFound)

	svc := NewGhostService(plans, sessions)
	got, err := svc.DayGhosts(ctx, DayRef{UserID: "u1", PlanID: "p1", WeekID: "w2", DayID: "w2-a"})

	require.NoError(t, err)
	require.Len(t, got.Exercises, 1)
	assert.False(t, got.FullBody)
	// Globally newest value for set 0, older record for set 1.
	assert.Equal(t, []domain.GhostValue{ghost(140, 3), ghost(100, 5)}, got.Exercises[0].Sets)
	plans.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestGhostService_DayGhosts_FullBodyModeAndSameDay(t *testing.T) {
	ctx := context.Background()
	plans := &mockPlanRepo{}
	sessions := &mockSessionRepo{}
	plans.On("GetByID", mock.Anything, "u1", "p1").Return(ghostTestPlan(true), nil)
	sessions.On("ListAll", mock.Anything, "u1").Return(ghostHistory(), nil)
	sessions.On("LastForDay", mock.Anything, "u1", "p1", "w2", "w2-a").Return(ghostHistory()[2], nil)

	svc := NewGhostService(plans, sessions)
	got, err := svc.DayGhosts(ctx, DayRef{UserID: "u1", PlanID: "p1", WeekID: "w2", DayID: "w2-a"})

	require.NoError(t, err)
	assert.True(t, got.FullBody)
	// Same-day lineage first, then only "Day A" history; Day B's 140 never shows up.
	assert.Equal(t, []domain.GhostValue{ghost(100, 5), ghost(100, 5)}, got.Exercises[0].Sets)
}

func TestGhostService_ResolveGhost_ExcludedCurrentSession(t *testing.T) {
	ctx := context.Background()
	current := &domain.SessionRecord{
		ID: "live", PlanID: "p1", WeekID: "w1", DayID: "w1-a", Date: "2024-01-12",
		Entries: []domain.SessionEntry{entry(squat, loggedSet(0, 999, 1))},
	}
	history := append([]*domain.SessionRecord{current}, ghostHistory()...)

	plans := &mockPlanRepo{}
	sessions := &mockSessionRepo{}
	plans.On("GetByID", mock.Anything, "u1", "p1").Return(ghostTestPlan(false), nil)
	sessions.On("ListAll", mock.Anything, "u1").Return(history, nil)
	sessions.On("LastForDay", mock.Anything, "u1", "p1", "w1", "w1-a").Return(current, nil)

	svc := NewGhostService(plans, sessions)
	ref := DayRef{UserID: "u1", PlanID: "p1", WeekID: "w1", DayID: "w1-a", ExcludeSessionID: "live"}

	got, err := svc.ResolveGhost(ctx, ref, squat, 0)
	require.NoError(t, err)
	// The previous occurrence of w1-a (s2) wins over newer history from w1-b.
	assert.Equal(t, ghost(120, 5), got)
}

func TestGhostService_Errors(t *testing.T) {
	ctx := context.Background()
	ref := DayRef{UserID: "u1", PlanID: "p1", WeekID: "w9", DayID: "nope"}

	t.Run("unknown day", func(t *testing.T) {
		plans := &mockPlanRepo{}
		sessions := &mockSessionRepo{}
		plans.On("GetByID", mock.Anything, "u1", "p1").Return(ghostTestPlan(false), nil)
		sessions.On("ListAll", mock.Anything, "u1").Return(nil, nil)
		sessions.On("LastForDay", mock.Anything, "u1", "p1", "w9", "nope").Return(nil, domain.ErrSessionNotFound)

		_, err := NewGhostService(plans, sessions).DayGhosts(ctx, ref)
		assert.ErrorIs(t, err, domain.ErrDayNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("boom")
		plans := &mockPlanRepo{}
		sessions := &mockSessionRepo{}
		plans.On("GetByID", mock.Anything, "u1", "p1").Return(nil, domain.ErrPlanNotFound)
		sessions.On("ListAll", mock.Anything, "u1").Return(nil, boom).Maybe()
		sessions.On("LastForDay", mock.Anything, "u1", "p1", "w9", "nope").Return(nil, domain.ErrSessionNotFound).Maybe()

		_, err := NewGhostService(plans, sessions).DayGhosts(ctx, ref)
		assert.Error(t, err)
	})
}
