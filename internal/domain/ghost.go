package domain

// GhostValue is a suggested weight/reps pair for a set that has not been
// logged yet. It is derived on read and never stored.
type GhostValue struct {
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
}

// Exists reports whether either half of the suggestion is present.
func (g GhostValue) Exists() bool {
	return g.Weight != nil || g.Reps != nil
}

// Sanitized drops non-finite weights so they never surface as suggestions.
func (g GhostValue) Sanitized() GhostValue {
	return GhostValue{Weight: FiniteWeight(g.Weight), Reps: g.Reps}
}
