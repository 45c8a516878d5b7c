package service

import "github.com/mansoorceksport/liftlog/internal/domain"

// ResolveGhost picks the suggestion for one set:
//  1. the previous occurrence of this plan day (sameDay),
//  2. the history index,
//  3. the same two tiers one set position back,
//  4. nothing.
func ResolveGhost(ref domain.ExerciseRef, setIndex int, sameDay, history *GhostIndex) domain.GhostValue {
	if v, ok := lookupTiers(ref, setIndex, sameDay, history); ok {
		return v
	}
	if setIndex > 0 {
		if v, ok := lookupTiers(ref, setIndex-1, sameDay, history); ok {
			return v
		}
	}
	return domain.GhostValue{}
}

func lookupTiers(ref domain.ExerciseRef, setIndex int, tiers ...*GhostIndex) (domain.GhostValue, bool) {
	for _, tier := range tiers {
		v, ok := tier.Lookup(ref, setIndex)
		if !ok {
			continue
		}
		if v = v.Sanitized(); v.Exists() {
			return v, true
		}
	}
	return domain.GhostValue{}, false
}

// ExerciseGhosts holds the suggestions for every target set of one plan item.
type ExerciseGhosts struct {
	PlanExerciseID string              `json:"plan_exercise_id"`
	Exercise       domain.ExerciseRef  `json:"exercise"`
	Sets           []domain.GhostValue `json:"sets"`
}

// ResolveDayGhosts resolves every target set of every item of a plan day,
// in plan order.
func ResolveDayGhosts(day *domain.PlanDay, sameDay, history *GhostIndex) []ExerciseGhosts {
	if day == nil {
		return nil
	}
	out := make([]ExerciseGhosts, 0, len(day.Items))
	for _, item := range day.Items {
		n := max(item.TargetSets, 0)
		sets := make([]domain.GhostValue, n)
		for i := range n {
			sets[i] = ResolveGhost(item.Exercise, i, sameDay, history)
		}
		out = append(out, ExerciseGhosts{
			PlanExerciseID: item.ID,
			Exercise:       item.Exercise,
			Sets:           sets,
		})
	}
	return out
}
