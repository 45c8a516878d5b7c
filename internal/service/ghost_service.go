package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GhostService loads plan and history from the stores and resolves ghost
// values for the sets of a plan day.
type GhostService struct {
	planRepo    domain.PlanRepository
	sessionRepo domain.SessionRepository
}

func NewGhostService(planRepo domain.PlanRepository, sessionRepo domain.SessionRepository) *GhostService {
	return &GhostService{
		planRepo:    planRepo,
		sessionRepo: sessionRepo,
	}
}

// DayRef addresses one day of a user's plan. ExcludeSessionID names the
// session currently being logged so it never suggests values to itself.
type DayRef struct {
	UserID           string
	PlanID           string
	WeekID           string
	DayID            string
	ExcludeSessionID string
}

// DayGhosts is the ghost view of a whole plan day.
type DayGhosts struct {
	PlanID    string           `json:"plan_id"`
	WeekID    string           `json:"week_id"`
	DayID     string           `json:"day_id"`
	FullBody  bool             `json:"full_body"`
	Exercises []ExerciseGhosts `json:"exercises"`
}

type ghostSources struct {
	plan    *domain.Plan
	day     *domain.PlanDay
	sameDay *GhostIndex
	history *GhostIndex
}

// DayGhosts resolves every target set of every exercise of the day.
func (s *GhostService) DayGhosts(ctx context.Context, ref DayRef) (*DayGhosts, error) {
	src, err := s.loadSources(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &DayGhosts{
		PlanID:    ref.PlanID,
		WeekID:    ref.WeekID,
		DayID:     ref.DayID,
		FullBody:  src.plan.FullBodyGhosts,
		Exercises: ResolveDayGhosts(src.day, src.sameDay, src.history),
	}, nil
}

// ResolveGhost resolves a single set of one exercise on the day.
func (s *GhostService) ResolveGhost(ctx context.Context, ref DayRef, exercise domain.ExerciseRef, setIndex int) (domain.GhostValue, error) {
	src, err := s.loadSources(ctx, ref)
	if err != nil {
		return domain.GhostValue{}, err
	}
	return ResolveGhost(exercise, setIndex, src.sameDay, src.history), nil
}

func (s *GhostService) loadSources(ctx context.Context, ref DayRef) (*ghostSources, error) {
	var (
		plan    *domain.Plan
		history []*domain.SessionRecord
		last    *domain.SessionRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.planRepo.GetByID(gctx, ref.UserID, ref.PlanID)
		if err != nil {
			return fmt.Errorf("get plan %s: %w", ref.PlanID, err)
		}
		plan = p
		return nil
	})
	g.Go(func() error {
		h, err := s.sessionRepo.ListAll(gctx, ref.UserID)
		if err != nil {
			return fmt.Errorf("list session history: %w", err)
		}
		history = h
		return nil
	})
	g.Go(func() error {
		l, err := s.sessionRepo.LastForDay(gctx, ref.UserID, ref.PlanID, ref.WeekID, ref.DayID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get last session for day %s: %w", ref.DayID, err)
		}
		last = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	day, err := plan.Day(ref.WeekID, ref.DayID)
	if err != nil {
		return nil, fmt.Errorf("plan %s week %s day %s: %w", ref.PlanID, ref.WeekID, ref.DayID, err)
	}

	if last != nil && last.ID == ref.ExcludeSessionID {
		last = previousOccurrence(history, ref)
	}

	scope := HistoryScope{}
	if plan.FullBodyGhosts {
		scope = FullBodyScope(plan, ref.WeekID, ref.DayID)
	}
	scope.ExcludeSessionID = ref.ExcludeSessionID

	src := &ghostSources{
		plan:    plan,
		day:     day,
		sameDay: BuildSameDayGhosts(last),
		history: BuildHistoryIndex(history, scope),
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   ref.UserID,
		"plan_id":   ref.PlanID,
		"day_id":    ref.DayID,
		"records":   len(history),
		"same_day":  last != nil,
		"full_body": plan.FullBodyGhosts,
	}).Debug("ghost sources loaded")

	return src, nil
}

// previousOccurrence finds the newest record of the same plan day other than
// the excluded one.
func previousOccurrence(history []*domain.SessionRecord, ref DayRef) *domain.SessionRecord {
	var (
		best   *domain.SessionRecord
		bestAt time.Time
	)
	for _, rec := range history {
		if rec == nil || rec.ID == ref.ExcludeSessionID {
			continue
		}
		if rec.PlanID != ref.PlanID || rec.WeekID != ref.WeekID || rec.DayID != ref.DayID {
			continue
		}
		at, ok := domain.ParseSessionDate(rec.Date)
		if !ok {
			continue
		}
		if best == nil || at.After(bestAt) {
			best, bestAt = rec, at
		}
	}
	return best
}
