package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// StreakService runs the streak engine against the stored preferences. The
// engine functions stay pure; this service owns the clock and the write-back.
type StreakService struct {
	prefsRepo domain.PreferencesRepository
	now       func() time.Time
}

func NewStreakService(prefsRepo domain.PreferencesRepository) *StreakService {
	return &StreakService{
		prefsRepo: prefsRepo,
		now:       time.Now,
	}
}

// StreakStatus is what clients render for the streak widget.
type StreakStatus struct {
	Config         domain.StreakConfig     `json:"config"`
	State          domain.StreakState      `json:"state"`
	Evaluation     domain.StreakEvaluation `json:"evaluation"`
	ScheduledToday bool                    `json:"scheduled_today"`
}

func defaultStreakConfig() domain.StreakConfig {
	return domain.StreakConfig{
		ScheduleMode: domain.ScheduleDaily,
		Timezone:     "UTC",
	}
}

func (s *StreakService) load(ctx context.Context, userID string) (*domain.Preferences, error) {
	prefs, err := s.prefsRepo.Load(ctx, userID)
	if errors.Is(err, domain.ErrPreferencesNotFound) {
		return &domain.Preferences{UserID: userID, Streak: defaultStreakConfig()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

// EvaluateStreak evaluates the streak now and persists a reset when a
// scheduled day was missed.
func (s *StreakService) EvaluateStreak(ctx context.Context, userID string) (*StreakStatus, error) {
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	eval := EvaluateStreak(prefs.Streak, &prefs.StreakState, now)
	state, reset := resetBrokenStreak(prefs.StreakState, eval)
	if reset {
		if err := s.prefsRepo.Save(ctx, userID, domain.PreferencesPatch{StreakState: &state}); err != nil {
			return nil, fmt.Errorf("save streak reset: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"previous": prefs.StreakState.CurrentStreak,
		}).Info("streak broken")
		telemetry.CountStreakEvent(ctx, "broken")
	}

	return &StreakStatus{
		Config:         prefs.Streak,
		State:          state,
		Evaluation:     eval,
		ScheduledToday: IsScheduledDay(prefs.Streak, now),
	}, nil
}

// RecordWorkoutCompletion advances the streak for a workout finished now.
// Repeated calls on the same local day leave the state unchanged, so
// concurrent double submissions are harmless.
func (s *StreakService) RecordWorkoutCompletion(ctx context.Context, userID string) (*StreakStatus, error) {
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	state, _ := resetBrokenStreak(prefs.StreakState, EvaluateStreak(prefs.Streak, &prefs.StreakState, now))
	next := RecordWorkout(prefs.Streak, state, now)

	if !sameStreakState(next, prefs.StreakState) {
		if err := s.prefsRepo.Save(ctx, userID, domain.PreferencesPatch{StreakState: &next}); err != nil {
			return nil, fmt.Errorf("save streak state: %w", err)
		}
		telemetry.CountStreakEvent(ctx, "recorded")
	}

	return &StreakStatus{
		Config:         prefs.Streak,
		State:          next,
		Evaluation:     EvaluateStreak(prefs.Streak, &next, now),
		ScheduledToday: IsScheduledDay(prefs.Streak, now),
	}, nil
}

// UpdateConfig replaces the streak config. Turning a disabled streak on
// starts it over from zero.
func (s *StreakService) UpdateConfig(ctx context.Context, userID string, cfg domain.StreakConfig) (*StreakStatus, error) {
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.ScheduleMode == "" {
		cfg.ScheduleMode = domain.ScheduleDaily
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := domain.PreferencesPatch{Streak: &cfg}
	state := prefs.StreakState
	if cfg.Enabled && !prefs.Streak.Enabled {
		state = domain.StreakState{}
		patch.StreakState = &state
	}
	if err := s.prefsRepo.Save(ctx, userID, patch); err != nil {
		return nil, fmt.Errorf("save streak config: %w", err)
	}

	now := s.now()
	return &StreakStatus{
		Config:         cfg,
		State:          state,
		Evaluation:     EvaluateStreak(cfg, &state, now),
		ScheduledToday: IsScheduledDay(cfg, now),
	}, nil
}

func resetBrokenStreak(state domain.StreakState, eval domain.StreakEvaluation) (domain.StreakState, bool) {
	if !eval.StreakBroken || state.CurrentStreak == 0 {
		return state, false
	}
	state.CurrentStreak = 0
	return state, true
}

func sameStreakState(a, b domain.StreakState) bool {
	if a.CurrentStreak != b.CurrentStreak || a.LongestStreak != b.LongestStreak {
		return false
	}
	if a.LastWorkoutDate == nil || b.LastWorkoutDate == nil {
		return a.LastWorkoutDate == b.LastWorkoutDate
	}
	return *a.LastWorkoutDate == *b.LastWorkoutDate
}
