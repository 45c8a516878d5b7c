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

// SessionService keeps logged sessions aligned with their plan day.
type SessionService struct {
	planRepo    domain.PlanRepository
	sessionRepo domain.SessionRepository
	newID       IDGenerator
	now         func() time.Time
}

func NewSessionService(planRepo domain.PlanRepository, sessionRepo domain.SessionRepository) *SessionService {
	return &SessionService{
		planRepo:    planRepo,
		sessionRepo: sessionRepo,
		newID:       generateULID,
		now:         time.Now,
	}
}

// SaveSession stores a logged session for the user. A missing id is
// assigned; the plan, week and day ids are required.
func (s *SessionService) SaveSession(ctx context.Context, userID string, record *domain.SessionRecord) error {
	if record == nil || record.PlanID == "" || record.WeekID == "" || record.DayID == "" {
		return domain.ErrInvalidSession
	}
	if record.ID == "" {
		record.ID = s.newID()
	}
	if record.Date == "" {
		record.Date = s.now().UTC().Format(time.RFC3339)
	}
	record.UserID = userID

	if err := s.sessionRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("save session %s: %w", record.ID, err)
	}
	return nil
}

// MergeSessionWithDay loads the session (or starts a new one when sessionID
// is empty or unknown) and re-aligns it with the current plan day. The result
// is written back only when its shape differs from what was stored.
func (s *SessionService) MergeSessionWithDay(ctx context.Context, ref DayRef, sessionID string) (*domain.SessionRecord, error) {
	plan, err := s.planRepo.GetByID(ctx, ref.UserID, ref.PlanID)
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", ref.PlanID, err)
	}
	day, err := plan.Day(ref.WeekID, ref.DayID)
	if err != nil {
		return nil, fmt.Errorf("plan %s week %s day %s: %w", ref.PlanID, ref.WeekID, ref.DayID, err)
	}

	var prior *domain.SessionRecord
	if sessionID != "" {
		prior, err = s.sessionRepo.GetByID(ctx, ref.UserID, sessionID)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("get session %s: %w", sessionID, err)
		}
	}
	if prior != nil && (prior.PlanID != ref.PlanID || prior.WeekID != ref.WeekID || prior.DayID != ref.DayID) {
		return nil, fmt.Errorf("session %s belongs to another plan day: %w", sessionID, domain.ErrInvalidSession)
	}

	isNew := prior == nil
	if isNew {
		id := sessionID
		if id == "" {
			id = s.newID()
		}
		prior = &domain.SessionRecord{
			ID:     id,
			UserID: ref.UserID,
			PlanID: ref.PlanID,
			WeekID: ref.WeekID,
			DayID:  ref.DayID,
			Date:   s.now().UTC().Format(time.RFC3339),
		}
	}

	merged := MergeSessionWithDay(day, prior, s.newID)

	if !isNew && !SessionShapeChanged(prior, &merged) {
		return &merged, nil
	}
	if err := s.sessionRepo.Upsert(ctx, &merged); err != nil {
		return nil, fmt.Errorf("save merged session %s: %w", merged.ID, err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    ref.UserID,
		"session_id": merged.ID,
		"entries":    len(merged.Entries),
		"new":        isNew,
	}).Info("session aligned with plan day")
	telemetry.CountSessionMerge(ctx, isNew)

	return &merged, nil
}
