package matching

import "math"

// DefaultDurationTolerance is the widest gap, in seconds, the duration
// fallback accepts.
const DefaultDurationTolerance = 0.1

// FindByDuration returns the candidate whose duration is closest to target
// within tolerance. Ties keep the earliest candidate.
func FindByDuration(target float64, candidates []Candidate, tolerance float64) (Candidate, bool) {
	within := WithinTolerance(target, candidates, tolerance)
	if len(within) == 0 {
		return Candidate{}, false
	}
	best := within[0]
	bestDiff := math.Abs(best.Duration - target)
	for _, candidate := range within[1:] {
		if diff := math.Abs(candidate.Duration - target); diff < bestDiff {
			best = candidate
			bestDiff = diff
		}
	}
	return best, true
}

// WithinTolerance returns every candidate whose duration lies within
// tolerance of target, in scan order. A negative tolerance is treated as zero
// and NaN durations never match.
func WithinTolerance(target float64, candidates []Candidate, tolerance float64) []Candidate {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return nil
	}
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = 0
	}
	var out []Candidate
	for _, candidate := range candidates {
		if math.Abs(candidate.Duration-target) <= tolerance {
			out = append(out, candidate)
		}
	}
	return out
}
