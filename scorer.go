package cssenhance

// Signals are the per-candidate inputs to the confidence scorer. Each
// field contributes a fixed direction to the final score; the combination
// itself belongs to the ScoringStrategy.
type Signals struct {
	// Exact registry match (strong positive).
	Exact bool
	// ContrastDelta is after-minus-before contrast ratio for
	// color-adjacent changes; positive maintains or improves contrast.
	ContrastDelta float64
	// FragileLayout marks known-fragile patterns such as negative
	// margins or calc() compositions (negative).
	FragileLayout bool
	// UsageConsistent: sibling components of the same type already use
	// the proposed token (positive).
	UsageConsistent bool
	// PriorBatchesClean: earlier progressive-apply batches in this run
	// verified without regression (positive).
	PriorBatchesClean bool
	// HistoryBoost in [-1, 1], derived from historically accepted versus
	// reverted suggestions for the same rule/component pair.
	HistoryBoost float64
	// OverrideConflict: an explicit project override pins this property
	// (strong negative, forces suppression).
	OverrideConflict bool
	// Ambiguous: multiple equally valid tokens match (forces the
	// candidate out of auto-apply regardless of other signals).
	Ambiguous bool
	// Insertion: the candidate adds a new block instead of rewriting an
	// existing value. Invented styling is never auto-applied, no matter
	// how strong the other signals are.
	Insertion bool
}

// ScoringStrategy combines a candidate and its signals into a confidence
// score in [0, 1]. The built-in strategy is additive; projects that learn
// their own weights can plug in a replacement.
type ScoringStrategy interface {
	Score(c Candidate, s Signals) float64
}

// Decision buckets.
type Decision int

const (
	// DecisionSuppress: never surfaced.
	DecisionSuppress Decision = iota
	// DecisionAdvisory: returned but not applied.
	DecisionAdvisory
	// DecisionAutoApply: eligible for progressive application.
	DecisionAutoApply
)

// Threshold semantics are normative: below the advisory floor candidates
// are suppressed entirely; between floor and gate they are advisory;
// at or above the gate they are auto-apply eligible.
const (
	advisoryFloor = 0.8
	autoApplyGate = 0.9
)

type defaultStrategy struct{}

func (defaultStrategy) Score(c Candidate, s Signals) float64 {
	score := c.Confidence

	if s.UsageConsistent {
		score += 0.03
	}
	if s.PriorBatchesClean {
		score += 0.02
	}
	score += 0.05 * s.HistoryBoost

	if s.FragileLayout {
		score -= 0.15
	}
	switch {
	case s.ContrastDelta > 0:
		score += 0.02
	case s.ContrastDelta < 0:
		score -= 0.2
	}

	if s.Ambiguous && score > 0.5 {
		score = 0.5
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// decide buckets a scored candidate. Override conflicts suppress
// unconditionally; ambiguity keeps the candidate advisory so the caller
// sees exactly one advisory per ambiguous value instead of silence;
// insertions are capped at advisory in every mode.
func decide(score float64, s Signals, mode AutoApplyMode) Decision {
	if s.OverrideConflict {
		return DecisionSuppress
	}
	if s.Ambiguous {
		return DecisionAdvisory
	}
	if s.Insertion {
		if score < advisoryFloor {
			return DecisionSuppress
		}
		return DecisionAdvisory
	}

	switch mode {
	case AutoApplyOff:
		if score < advisoryFloor {
			return DecisionSuppress
		}
		return DecisionAdvisory
	case AutoApplyAll:
		if score < advisoryFloor {
			return DecisionSuppress
		}
		return DecisionAutoApply
	}

	switch {
	case score < advisoryFloor:
		return DecisionSuppress
	case score < autoApplyGate:
		return DecisionAdvisory
	default:
		return DecisionAutoApply
	}
}

// historyBoost folds accept/revert feedback into [-1, 1].
func historyBoost(fs FeedbackStats) float64 {
	total := fs.Accepted + fs.Reverted
	if total == 0 {
		return 0
	}
	return float64(fs.Accepted-fs.Reverted) / float64(total)
}
