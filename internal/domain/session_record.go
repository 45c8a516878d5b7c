package domain

import (
	"context"
	"errors"
	"math"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session record not found")
	ErrInvalidSession  = errors.New("invalid session record")
)

// SessionSet is one logged (or still empty) set slot. SetIndex is 0-based.
type SessionSet struct {
	ID       string   `json:"id" bson:"id"`
	SetIndex int      `json:"set_index" bson:"set_index"`
	Weight   *float64 `json:"weight" bson:"weight"`
	Reps     *int     `json:"reps" bson:"reps"`
}

// IsComplete reports whether both weight and reps carry usable numbers.
func (s SessionSet) IsComplete() bool {
	return FiniteWeight(s.Weight) != nil && s.Reps != nil
}

type SessionEntry struct {
	ID       string       `json:"id" bson:"id"`
	Exercise ExerciseRef  `json:"exercise" bson:"exercise"`
	Sets     []SessionSet `json:"sets" bson:"sets"`
	Note     string       `json:"note,omitempty" bson:"note,omitempty"`
}

// SessionRecord is what was logged for one plan day on one occasion.
// Date is kept as the ISO-8601 string the client sent.
type SessionRecord struct {
	ID        string         `json:"id" bson:"_id"`
	UserID    string         `json:"user_id" bson:"user_id"`
	PlanID    string         `json:"plan_id" bson:"plan_id"`
	WeekID    string         `json:"week_id" bson:"week_id"`
	DayID     string         `json:"day_id" bson:"day_id"`
	Date      string         `json:"date" bson:"date"`
	Entries   []SessionEntry `json:"entries" bson:"entries"`
	Completed bool           `json:"completed" bson:"completed"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

var sessionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseSessionDate parses the record date. ok is false for missing or
// malformed dates.
func ParseSessionDate(s string) (time.Time, bool) {
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FiniteWeight returns nil for nil, NaN and infinite weights.
func FiniteWeight(w *float64) *float64 {
	if w == nil || math.IsNaN(*w) || math.IsInf(*w, 0) {
		return nil
	}
	return w
}

type SessionRepository interface {
	// ListAll returns every record of the user, newest first by date.
	ListAll(ctx context.Context, userID string) ([]*SessionRecord, error)
	// LastForDay returns the newest record for the plan day, or ErrSessionNotFound.
	LastForDay(ctx context.Context, userID, planID, weekID, dayID string) (*SessionRecord, error)
	GetByID(ctx context.Context, userID, id string) (*SessionRecord, error)
	Upsert(ctx context.Context, record *SessionRecord) error
}
