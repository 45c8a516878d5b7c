package service

import (
	"sort"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

// HistoryScope restricts which session records feed a history index.
// A nil DayIDs set admits every day.
type HistoryScope struct {
	DayIDs           map[string]struct{}
	ExcludeSessionID string
}

// FullBodyScope admits only records logged against days of the plan that
// share the name of dayID's day, so equivalent days are compared across weeks.
func FullBodyScope(plan *domain.Plan, weekID, dayID string) HistoryScope {
	scope := HistoryScope{DayIDs: map[string]struct{}{dayID: {}}}
	if plan == nil {
		return scope
	}
	day, err := plan.Day(weekID, dayID)
	if err != nil {
		return scope
	}
	for _, id := range plan.DayIDsNamed(day.Name) {
		scope.DayIDs[id] = struct{}{}
	}
	return scope
}

func (s HistoryScope) allows(rec *domain.SessionRecord) bool {
	if s.ExcludeSessionID != "" && rec.ID == s.ExcludeSessionID {
		return false
	}
	if s.DayIDs == nil {
		return true
	}
	_, ok := s.DayIDs[rec.DayID]
	return ok
}

type ghostSlot struct {
	value domain.GhostValue
	at    time.Time
}

type slotTable map[domain.MatchKey]map[int]ghostSlot

// fill stores v unless the slot is already taken. Callers feed values
// newest first, so the first write is the most recent one.
func (t slotTable) fill(key domain.MatchKey, setIndex int, slot ghostSlot) {
	sets, ok := t[key]
	if !ok {
		sets = make(map[int]ghostSlot)
		t[key] = sets
	}
	if _, taken := sets[setIndex]; !taken {
		sets[setIndex] = slot
	}
}

func (t slotTable) get(key domain.MatchKey, setIndex int) (ghostSlot, bool) {
	slot, ok := t[key][setIndex]
	return slot, ok
}

// GhostIndex maps exercise identity and set position to the most recent
// known value. byKey is keyed by MatchKey; byName holds every entry under
// its name key so id-less lookups still see entries that carry an id.
type GhostIndex struct {
	byKey  slotTable
	byName slotTable
}

func newGhostIndex() *GhostIndex {
	return &GhostIndex{byKey: slotTable{}, byName: slotTable{}}
}

func (ix *GhostIndex) add(ref domain.ExerciseRef, setIndex int, slot ghostSlot) {
	if setIndex < 0 {
		return
	}
	ix.byKey.fill(ref.MatchKey(), setIndex, slot)
	ix.byName.fill(ref.NameKey(), setIndex, slot)
}

// Lookup returns the value stored for ref at setIndex. A ref with an id
// matches entries with the same id and id-less entries of the same name,
// preferring the more recent of the two. A ref without an id matches any
// entry of the same name.
func (ix *GhostIndex) Lookup(ref domain.ExerciseRef, setIndex int) (domain.GhostValue, bool) {
	if ix == nil {
		return domain.GhostValue{}, false
	}
	if !ref.HasID() {
		slot, ok := ix.byName.get(ref.NameKey(), setIndex)
		return slot.value, ok
	}

	byID, idOK := ix.byKey.get(ref.MatchKey(), setIndex)
	byName, nameOK := ix.byKey.get(ref.NameKey(), setIndex)
	switch {
	case idOK && nameOK:
		if byName.at.After(byID.at) {
			return byName.value, true
		}
		return byID.value, true
	case idOK:
		return byID.value, true
	case nameOK:
		return byName.value, true
	}
	return domain.GhostValue{}, false
}

// Table flattens the index to MatchKey -> setIndex -> value.
func (ix *GhostIndex) Table() map[domain.MatchKey]map[int]domain.GhostValue {
	out := make(map[domain.MatchKey]map[int]domain.GhostValue)
	if ix == nil {
		return out
	}
	for key, sets := range ix.byKey {
		values := make(map[int]domain.GhostValue, len(sets))
		for idx, slot := range sets {
			values[idx] = slot.value
		}
		out[key] = values
	}
	return out
}

type datedRecord struct {
	record *domain.SessionRecord
	at     time.Time
}

// BuildHistoryIndex indexes the newest valid value for every exercise and set
// position. The scope is applied first, records with unusable dates are
// skipped, and the rest are scanned newest to oldest regardless of input
// order. Records sharing a timestamp keep their input order.
func BuildHistoryIndex(records []*domain.SessionRecord, scope HistoryScope) *GhostIndex {
	dated := make([]datedRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil || !scope.allows(rec) {
			continue
		}
		at, ok := domain.ParseSessionDate(rec.Date)
		if !ok {
			continue
		}
		dated = append(dated, datedRecord{record: rec, at: at})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].at.After(dated[j].at)
	})

	ix := newGhostIndex()
	for _, d := range dated {
		for _, entry := range d.record.Entries {
			for _, set := range entry.Sets {
				if !set.IsComplete() {
					continue
				}
				ix.add(entry.Exercise, set.SetIndex, ghostSlot{
					value: domain.GhostValue{Weight: set.Weight, Reps: set.Reps},
					at:    d.at,
				})
			}
		}
	}
	return ix
}

// BuildSameDayGhosts copies the values of the previous occurrence of a plan
// day verbatim. Half-filled sets are kept; only sets with neither a usable
// weight nor reps are left out.
func BuildSameDayGhosts(record *domain.SessionRecord) *GhostIndex {
	ix := newGhostIndex()
	if record == nil {
		return ix
	}
	at, _ := domain.ParseSessionDate(record.Date)
	for _, entry := range record.Entries {
		for _, set := range entry.Sets {
			v := domain.GhostValue{Weight: set.Weight, Reps: set.Reps}.Sanitized()
			if !v.Exists() {
				continue
			}
			ix.add(entry.Exercise, set.SetIndex, ghostSlot{value: v, at: at})
		}
	}
	return ix
}
