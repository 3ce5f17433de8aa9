// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "github.com/pdiddy/place-scout/pkg/types"

// Inclusion thresholds.
const (
	StrongThreshold = 30
	WeakThreshold   = 10
	FinalGate       = 20
)

// Include applies the inclusion policy to a scored candidate.
//
// The branches run in sequence: no website discards; above
// StrongThreshold keeps; below WeakThreshold discards; anything else is a
// borderline keep. A final gate then discards every score not strictly
// above FinalGate, whichever branch ran. The net effect is "keep iff the
// website is present and score > 20": borderline scores in [10,20] are kept
// by the borderline branch and then always dropped by the gate. This
// matches the established behavior of the tool and is left as is until the
// thresholds are revisited.
func Include(c types.Candidate, s types.ScoreResult) types.Decision {
	if !c.HasWebsite() {
		return types.Decision{Include: false, Reason: types.ReasonNoWebsite}
	}

	score := s.Score
	var d types.Decision
	switch {
	case score > StrongThreshold:
		d = types.Decision{Include: true, Reason: types.ReasonStrongSignal}
	case score < WeakThreshold:
		d = types.Decision{Include: false, Reason: types.ReasonWeakSignal}
	default:
		d = types.Decision{Include: true, Reason: types.ReasonBorderline}
	}

	if d.Include && !(score > FinalGate) {
		return types.Decision{Include: false, Reason: types.ReasonBelowFinalGate}
	}
	return d
}
