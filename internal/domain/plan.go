package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrDayNotFound  = errors.New("plan day not found")
	ErrInvalidPlan  = errors.New("invalid plan")
)

// Plan is a multi-week training plan owned by a user.
type Plan struct {
	ID     string `json:"id" bson:"_id"`
	UserID string `json:"user_id" bson:"user_id"`
	Name   string `json:"name" bson:"name"`
	// FullBodyGhosts restricts ghost history to days sharing the viewed day's name.
	FullBodyGhosts bool       `json:"full_body_ghosts" bson:"full_body_ghosts"`
	Weeks          []PlanWeek `json:"weeks" bson:"weeks"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}

type PlanWeek struct {
	ID   string    `json:"id" bson:"id"`
	Name string    `json:"name" bson:"name"`
	Days []PlanDay `json:"days" bson:"days"`
}

// PlanDay is one trainable day of a week, e.g. "Push Day".
type PlanDay struct {
	ID    string         `json:"id" bson:"id"`
	Name  string         `json:"name" bson:"name"`
	Items []PlanExercise `json:"items" bson:"items"`
}

type PlanExercise struct {
	ID         string      `json:"id" bson:"id"`
	Exercise   ExerciseRef `json:"exercise" bson:"exercise"`
	TargetSets int         `json:"target_sets" bson:"target_sets"`
	TargetReps string      `json:"target_reps,omitempty" bson:"target_reps,omitempty"` // free text, e.g. "8-12"
}

// Day finds a day by week and day id.
func (p *Plan) Day(weekID, dayID string) (*PlanDay, error) {
	for wi := range p.Weeks {
		if p.Weeks[wi].ID != weekID {
			continue
		}
		for di := range p.Weeks[wi].Days {
			if p.Weeks[wi].Days[di].ID == dayID {
				return &p.Weeks[wi].Days[di], nil
			}
		}
	}
	return nil, ErrDayNotFound
}

// Validate checks that every week and day carries an id and that day ids are
// unique within the plan, which session lookups rely on.
func (p *Plan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing plan id", ErrInvalidPlan)
	}
	seen := make(map[string]struct{})
	for _, w := range p.Weeks {
		if w.ID == "" {
			return fmt.Errorf("%w: week without id", ErrInvalidPlan)
		}
		for _, d := range w.Days {
			if d.ID == "" {
				return fmt.Errorf("%w: day without id in week %s", ErrInvalidPlan, w.ID)
			}
			if _, dup := seen[d.ID]; dup {
				return fmt.Errorf("%w: duplicate day id %s", ErrInvalidPlan, d.ID)
			}
			seen[d.ID] = struct{}{}
			for _, item := range d.Items {
				if item.TargetSets < 0 {
					return fmt.Errorf("%w: negative target sets on day %s", ErrInvalidPlan, d.ID)
				}
			}
		}
	}
	return nil
}

// DayIDsNamed returns the ids of every day across all weeks whose normalized
// name equals name.
func (p *Plan) DayIDsNamed(name string) []string {
	want := NormalizeName(name)
	var ids []string
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			if NormalizeName(d.Name) == want {
				ids = append(ids, d.ID)
			}
		}
	}
	return ids
}

type PlanRepository interface {
	GetByID(ctx context.Context, userID, planID string) (*Plan, error)
	ListByUser(ctx context.Context, userID string) ([]*Plan, error)
	Upsert(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, userID, planID string) error
}
