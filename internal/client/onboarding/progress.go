package onboarding

// Progress is the position within the onboarding flow, 1-based.
type Progress struct {
	Current int
	Total   int
}

// Percent is the share of steps reached, clamped to [0, 100].
func (p Progress) Percent() int {
	if p.Total <= 0 || p.Current <= 0 {
		return 0
	}
	if p.Current >= p.Total {
		return 100
	}
	return p.Current * 100 / p.Total
}

// Reached reports whether step (1-based) is at or before the current one.
func (p Progress) Reached(step int) bool {
	return step >= 1 && step <= p.Current
}
