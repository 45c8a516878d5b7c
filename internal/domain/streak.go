package domain

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
)

var (
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrInvalidSchedule     = errors.New("invalid streak schedule")
)

// ScheduleMode decides which calendar days expect a workout.
type ScheduleMode string

const (
	ScheduleDaily   ScheduleMode = "daily"
	ScheduleRolling ScheduleMode = "rolling"
	ScheduleWeekly  ScheduleMode = "weekly"
)

func (m ScheduleMode) Valid() bool {
	switch m {
	case ScheduleDaily, ScheduleRolling, ScheduleWeekly:
		return true
	}
	return false
}

// StreakConfig describes the workout schedule a streak is measured against.
type StreakConfig struct {
	Enabled        bool           `json:"enabled" bson:"enabled"`
	ScheduleMode   ScheduleMode   `json:"schedule_mode" bson:"schedule_mode"`
	RollingDaysOn  int            `json:"rolling_days_on,omitempty" bson:"rolling_days_on,omitempty"`
	RollingDaysOff int            `json:"rolling_days_off,omitempty" bson:"rolling_days_off,omitempty"`
	WeeklyDays     []time.Weekday `json:"weekly_days,omitempty" bson:"weekly_days,omitempty"`
	StartDate      civil.Date     `json:"start_date" bson:"start_date"`
	Timezone       string         `json:"timezone" bson:"timezone"` // IANA name
}

// Validate rejects configs the engine cannot schedule against. The engine
// itself tolerates them; this is for input coming over the wire.
func (c StreakConfig) Validate() error {
	if !c.ScheduleMode.Valid() {
		return ErrInvalidSchedule
	}
	if c.RollingDaysOn < 0 || c.RollingDaysOff < 0 {
		return ErrInvalidSchedule
	}
	if c.ScheduleMode == ScheduleRolling && c.RollingDaysOn == 0 {
		return ErrInvalidSchedule
	}
	for _, d := range c.WeeklyDays {
		if d < time.Sunday || d > time.Saturday {
			return ErrInvalidSchedule
		}
	}
	if c.ScheduleMode == ScheduleRolling && !c.StartDate.IsValid() {
		return ErrInvalidSchedule
	}
	return nil
}

// StreakState is the persisted streak counter.
type StreakState struct {
	CurrentStreak   int         `json:"current_streak" bson:"current_streak"`
	LongestStreak   int         `json:"longest_streak" bson:"longest_streak"`
	LastWorkoutDate *civil.Date `json:"last_workout_date" bson:"last_workout_date"`
}

// StreakEvaluation is the read-side view of a streak at a given instant.
type StreakEvaluation struct {
	CurrentStreak int  `json:"current_streak"`
	IsHitToday    bool `json:"is_hit_today"`
	StreakBroken  bool `json:"streak_broken"`
}

// Preferences holds the per-user streak config and state pair.
type Preferences struct {
	UserID      string       `json:"user_id" bson:"_id"`
	Streak      StreakConfig `json:"streak" bson:"streak"`
	StreakState StreakState  `json:"streak_state" bson:"streak_state"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// PreferencesPatch is a partial update; nil fields are left untouched.
type PreferencesPatch struct {
	Streak      *StreakConfig
	StreakState *StreakState
}

type PreferencesRepository interface {
	// Load returns ErrPreferencesNotFound when the user never saved preferences.
	Load(ctx context.Context, userID string) (*Preferences, error)
	Save(ctx context.Context, userID string, patch PreferencesPatch) error
}
