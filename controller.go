package cssenhance

import (
	"fmt"
	"sort"
	"strings"
)

// batchSize is how many changes are applied between metric checks.
const batchSize = 2

// controller applies ranked auto-apply candidates progressively: small
// batches, cheap structural metrics in between, rollback on the first
// regression. Whatever the outcome, changes never exceed the cap and
// advisory/suppressed candidates never touch the source.
type controller struct {
	unit *SourceUnit
	reg  *Registry
	opts Options
}

// runResult is one controller invocation's outcome.
type runResult struct {
	code     string
	changes  []AppliedChange
	advisory []Candidate
}

// run promotes eligible candidates to applied changes. startOrder and
// budget let the compositor stage the optimizer after the tokenizing
// passes while preserving the global cap.
func (pc *controller) run(eligible []Candidate, startOrder, budget int) runResult {
	res := runResult{code: pc.unit.Code}
	if budget <= 0 || len(eligible) == 0 {
		res.advisory = append(res.advisory, eligible...)
		return res
	}

	ranked := make([]Candidate, len(eligible))
	copy(ranked, eligible)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].start < ranked[j].start
	})

	if len(ranked) > budget {
		res.advisory = append(res.advisory, ranked[budget:]...)
		ranked = ranked[:budget]
	}

	var accepted []Candidate
	prev := computeUnitMetrics(pc.unit, pc.reg)

	for len(ranked) > 0 {
		n := batchSize
		if n > len(ranked) {
			n = len(ranked)
		}
		batch := ranked[:n]
		ranked = ranked[n:]

		trial, err := applySet(pc.unit.Code, append(append([]Candidate{}, accepted...), batch...))
		if err != nil {
			// A candidate no longer matches the source; demote it and
			// everything after it rather than guessing.
			res.advisory = append(res.advisory, batch...)
			res.advisory = append(res.advisory, ranked...)
			break
		}

		trialMetrics := computeUnitMetrics(&SourceUnit{Code: trial, Language: pc.unit.Language, FilePath: pc.unit.FilePath}, pc.reg)
		if regressed(trialMetrics, prev) {
			// First regression: roll back this batch, demote the rest.
			res.advisory = append(res.advisory, batch...)
			res.advisory = append(res.advisory, ranked...)
			break
		}

		accepted = append(accepted, batch...)
		prev = trialMetrics
		res.code = trial

		// Non-regression across prior steps is itself a positive signal
		// for what remains in this run.
		for i := range ranked {
			if ranked[i].Confidence < 1 {
				ranked[i].Confidence += 0.01
				if ranked[i].Confidence > 1 {
					ranked[i].Confidence = 1
				}
			}
		}
	}

	// Verified changes are reported in ascending source order.
	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })
	for i, c := range accepted {
		res.changes = append(res.changes, AppliedChange{
			Candidate:    c,
			AppliedOrder: startOrder + i + 1,
			Verified:     true,
		})
	}
	return res
}

// applySet rewrites the original code with a set of non-overlapping
// candidates. Offsets always refer to the original text, so replaying the
// accepted set plus one new batch is cheap and rollback is free.
func applySet(code string, cands []Candidate) (string, error) {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var b strings.Builder
	b.Grow(len(code))
	pos := 0
	for _, c := range sorted {
		if c.start < pos || c.end > len(code) {
			return "", fmt.Errorf("apply: candidate range [%d,%d) out of order", c.start, c.end)
		}
		if got := code[c.start:c.end]; got != c.Before {
			return "", fmt.Errorf("apply: source drift at offset %d: %q != %q", c.start, got, c.Before)
		}
		b.WriteString(code[pos:c.start])
		b.WriteString(c.After)
		pos = c.end
	}
	b.WriteString(code[pos:])
	return b.String(), nil
}
