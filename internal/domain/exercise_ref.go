package domain

import "strings"

const (
	matchKeyIDPrefix   = "id:"
	matchKeyNamePrefix = "name:"
)

// MatchKey is the canonical identity of an exercise used as a lookup key.
// It has exactly two forms: "id:<id>" when the reference carries a stable id,
// and "name:<normalized name>" otherwise.
type MatchKey string

// IsID reports whether the key was derived from a stable id.
func (k MatchKey) IsID() bool {
	return strings.HasPrefix(string(k), matchKeyIDPrefix)
}

// ExerciseRef points at an exercise by optional stable id and free-text name.
type ExerciseRef struct {
	ID   string `json:"id,omitempty" bson:"id,omitempty"`
	Name string `json:"name" bson:"name"`
}

// HasID reports whether the reference carries a stable id.
func (r ExerciseRef) HasID() bool {
	return strings.TrimSpace(r.ID) != ""
}

// MatchKey returns the id key when an id is present, else the name key.
func (r ExerciseRef) MatchKey() MatchKey {
	if r.HasID() {
		return MatchKey(matchKeyIDPrefix + strings.TrimSpace(r.ID))
	}
	return r.NameKey()
}

// NameKey returns the name key regardless of whether an id is present.
func (r ExerciseRef) NameKey() MatchKey {
	return MatchKey(matchKeyNamePrefix + NormalizeName(r.Name))
}

// SameExercise compares two references. Ids decide only when both sides have
// one; a reference with an id still matches an id-less reference of the same
// name, so plan entries that predate id assignment keep matching.
func SameExercise(a, b ExerciseRef) bool {
	if a.HasID() && b.HasID() {
		return strings.TrimSpace(a.ID) == strings.TrimSpace(b.ID)
	}
	return NormalizeName(a.Name) == NormalizeName(b.Name)
}

// NormalizeName trims, lowercases and collapses internal whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
