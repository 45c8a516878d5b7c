package service

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mansoorceksport/liftlog/internal/domain"
)

// scheduleLocation resolves the config timezone, falling back to UTC when it
// is empty or unknown.
func scheduleLocation(cfg domain.StreakConfig) *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalDate is the calendar date of t in the config timezone.
func LocalDate(cfg domain.StreakConfig, t time.Time) civil.Date {
	return civil.DateOf(t.In(scheduleLocation(cfg)))
}

// IsScheduledDay reports whether the local calendar day containing t expects
// a workout. A disabled config schedules nothing.
func IsScheduledDay(cfg domain.StreakConfig, t time.Time) bool {
	return isScheduledOn(cfg, LocalDate(cfg, t))
}

func isScheduledOn(cfg domain.StreakConfig, d civil.Date) bool {
	if !cfg.Enabled {
		return false
	}
	switch cfg.ScheduleMode {
	case domain.ScheduleDaily:
		return true
	case domain.ScheduleRolling:
		cycle := cfg.RollingDaysOn + cfg.RollingDaysOff
		if cfg.RollingDaysOn <= 0 || cfg.RollingDaysOff < 0 {
			return false
		}
		n := d.DaysSince(cfg.StartDate)
		if n < 0 {
			return false
		}
		return n%cycle < cfg.RollingDaysOn
	case domain.ScheduleWeekly:
		return slices.Contains(cfg.WeeklyDays, d.In(time.UTC).Weekday())
	}
	return false
}

// schedulePeriod is the number of consecutive days after which the schedule
// repeats; 0 means nothing is ever scheduled.
func schedulePeriod(cfg domain.StreakConfig) int {
	switch cfg.ScheduleMode {
	case domain.ScheduleDaily:
		return 1
	case domain.ScheduleWeekly:
		return 7
	case domain.ScheduleRolling:
		if cfg.RollingDaysOn <= 0 || cfg.RollingDaysOff < 0 {
			return 0
		}
		return cfg.RollingDaysOn + cfg.RollingDaysOff
	}
	return 0
}

// missedScheduledDay reports whether any day strictly between from and to is
// a scheduled day. Once a full period has been checked without a hit the
// rest of the gap cannot contain one.
func missedScheduledDay(cfg domain.StreakConfig, from, to civil.Date) bool {
	period := schedulePeriod(cfg)
	if period == 0 {
		return false
	}
	checked := 0
	for d := from.AddDays(1); d.Before(to); d = d.AddDays(1) {
		if cfg.ScheduleMode == domain.ScheduleRolling && d.Before(cfg.StartDate) {
			d = cfg.StartDate.AddDays(-1)
			continue
		}
		if isScheduledOn(cfg, d) {
			return true
		}
		checked++
		if checked >= period {
			return false
		}
	}
	return false
}

// EvaluateStreak reports the streak as of now. The streak is broken when a
// scheduled day passed between the last workout and today without one;
// unscheduled days in the gap never break it.
func EvaluateStreak(cfg domain.StreakConfig, state *domain.StreakState, now time.Time) domain.StreakEvaluation {
	if !cfg.Enabled || state == nil || state.LastWorkoutDate == nil {
		return domain.StreakEvaluation{}
	}

	last := *state.LastWorkoutDate
	today := LocalDate(cfg, now)
	eval := domain.StreakEvaluation{
		CurrentStreak: state.CurrentStreak,
		IsHitToday:    last == today,
	}
	if missedScheduledDay(cfg, last, today) {
		eval.StreakBroken = true
		eval.CurrentStreak = 0
	}
	return eval
}

// RecordWorkout advances the streak for a workout completed at now. It is a
// no-op when the config is disabled, when a workout was already recorded on
// the same local day, and on days the schedule does not expect a workout.
func RecordWorkout(cfg domain.StreakConfig, state domain.StreakState, now time.Time) domain.StreakState {
	if !cfg.Enabled {
		return state
	}
	today := LocalDate(cfg, now)
	if state.LastWorkoutDate != nil && *state.LastWorkoutDate == today {
		return state
	}
	if !isScheduledOn(cfg, today) {
		return state
	}

	next := state.CurrentStreak + 1
	return domain.StreakState{
		CurrentStreak:   next,
		LongestStreak:   max(next, state.LongestStreak),
		LastWorkoutDate: &today,
	}
}
