package service

import (
	"crypto/rand"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/oklog/ulid/v2"
)

// IDGenerator issues ids for entries and set slots created during a merge.
type IDGenerator func() string

// generateULID creates a new ULID string
func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// MergeSessionWithDay aligns a session with the current definition of its
// plan day. The plan decides which exercises appear and in what order; prior
// entries are matched by SameExercise and each is used at most once. Set
// slots reuse prior sets by position and missing slots start empty. Prior
// entries with no counterpart in the plan are dropped.
//
// Merging an already merged session whose entries and sets carry ids returns
// an equal session.
func MergeSessionWithDay(day *domain.PlanDay, prior *domain.SessionRecord, newID IDGenerator) domain.SessionRecord {
	if newID == nil {
		newID = generateULID
	}

	var merged domain.SessionRecord
	var priorEntries []domain.SessionEntry
	if prior != nil {
		merged = *prior
		priorEntries = prior.Entries
	}
	if day == nil {
		merged.Entries = nil
		return merged
	}
	if merged.DayID == "" {
		merged.DayID = day.ID
	}

	used := make([]bool, len(priorEntries))
	merged.Entries = make([]domain.SessionEntry, 0, len(day.Items))
	for _, item := range day.Items {
		match := takeMatchingEntry(priorEntries, used, item.Exercise)

		entry := domain.SessionEntry{Exercise: item.Exercise}
		if match != nil {
			entry.ID = match.ID
			entry.Note = match.Note
		}
		if entry.ID == "" {
			entry.ID = newID()
		}

		slots := max(item.TargetSets, 0)
		entry.Sets = make([]domain.SessionSet, slots)
		for i := range slots {
			var set domain.SessionSet
			if match != nil && i < len(match.Sets) {
				p := match.Sets[i]
				set = domain.SessionSet{ID: p.ID, Weight: copyFloat(p.Weight), Reps: copyInt(p.Reps)}
			}
			if set.ID == "" {
				set.ID = newID()
			}
			set.SetIndex = i
			entry.Sets[i] = set
		}

		merged.Entries = append(merged.Entries, entry)
	}
	return merged
}

func takeMatchingEntry(entries []domain.SessionEntry, used []bool, ref domain.ExerciseRef) *domain.SessionEntry {
	for i := range entries {
		if used[i] || !domain.SameExercise(entries[i].Exercise, ref) {
			continue
		}
		used[i] = true
		return &entries[i]
	}
	return nil
}

// SessionShapeChanged reports whether two sessions differ in their entry
// list, comparing only the normalized exercise name and set count of each
// entry. Edits to weights, reps, notes or ids alone do not count; callers
// use this to skip writes after a merge that only re-aligned values.
func SessionShapeChanged(a, b *domain.SessionRecord) bool {
	if a == nil || b == nil {
		return a != b
	}
	if len(a.Entries) != len(b.Entries) {
		return true
	}
	for i := range a.Entries {
		ea, eb := a.Entries[i], b.Entries[i]
		if domain.NormalizeName(ea.Exercise.Name) != domain.NormalizeName(eb.Exercise.Name) {
			return true
		}
		if len(ea.Sets) != len(eb.Sets) {
			return true
		}
	}
	return false
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
