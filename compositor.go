package cssenhance

import (
	"fmt"
	"sort"
	"strings"
)

// GuardrailError is returned in strict mode when a guardrail (contrast
// regression) would otherwise silently drop a candidate.
type GuardrailError struct {
	Candidate Candidate
	Reason    string
}

func (e *GuardrailError) Error() string {
	return fmt.Sprintf("guardrail violation at %s:%d: %s", e.Candidate.Location.File, e.Candidate.Location.Line, e.Reason)
}

// Engine composes the rule passes, the confidence scorer and the
// progressive application controller over one source unit at a time. The
// core transform is pure and synchronous; engines are safe for
// concurrent use.
type Engine struct {
	opts   Options
	passes []rulePass
}

// New builds an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults(), passes: tokenizingPasses()}
}

// Enhance runs the full pipeline over one source unit: rule passes,
// scoring, progressive application, then the terminal optimizer pass on
// the rewritten code. Re-running Enhance on its own output yields zero
// changes.
func (e *Engine) Enhance(unit SourceUnit, reg *Registry, pctx *Context) (*EnhancementResult, error) {
	res := &EnhancementResult{
		Code:      unit.Code,
		Signature: Signature(unit.Code, unit.Language, reg.Version),
	}

	if pathExcluded(unit.FilePath, e.opts.ExcludePatterns) {
		res.Excluded = true
		return res, nil
	}
	markers := scanMarkers(unit.Code)
	if markers.fileDisabled {
		res.Excluded = true
		return res, nil
	}

	sheet, err := parseUnit(&unit)
	if err != nil {
		res.Malformed = true
		return res, nil
	}

	before := computeMetrics(sheet, reg)

	eligible, advisory, err := e.collect(&unit, sheet, reg, pctx, markers)
	if err != nil {
		return nil, err
	}

	pc := &controller{unit: &unit, reg: reg, opts: e.opts}
	out := pc.run(eligible, 0, e.opts.MaxChanges)
	res.Code = out.code
	res.Changes = out.changes
	advisory = append(advisory, out.advisory...)

	// Terminal optimizer stage over the tokenized code, within the
	// remaining change budget.
	if budget := e.opts.MaxChanges - len(res.Changes); budget > 0 && e.opts.AutoApply != AutoApplyOff {
		optUnit := SourceUnit{Code: res.Code, Language: unit.Language, FilePath: unit.FilePath}
		if optSheet, err := parseUnit(&optUnit); err == nil {
			// Marker lines are re-derived from the rewritten code so
			// suppression tracks the offsets the optimizer sees.
			optMarkers := scanMarkers(res.Code)
			optCands := filterSuppressed(optimizerPass{}.Apply(&optUnit, optSheet, reg, pctx), optMarkers)
			optPC := &controller{unit: &optUnit, reg: reg, opts: e.opts}
			optOut := optPC.run(optCands, len(res.Changes), budget)
			res.Code = optOut.code
			res.Changes = append(res.Changes, optOut.changes...)
		}
	}

	sort.SliceStable(advisory, func(i, j int) bool { return advisory[i].start < advisory[j].start })
	res.Advisory = advisory

	afterUnit := SourceUnit{Code: res.Code, Language: unit.Language, FilePath: unit.FilePath}
	res.MetricsDelta = MetricsDelta{Before: before, After: computeUnitMetrics(&afterUnit, reg)}
	return res, nil
}

// Analyze is the read-only pipeline: passes and scoring run, nothing is
// applied, and findings come back as metrics, issues and opportunities.
func (e *Engine) Analyze(unit SourceUnit, reg *Registry, pctx *Context) (*Analysis, error) {
	a := &Analysis{}

	if pathExcluded(unit.FilePath, e.opts.ExcludePatterns) {
		a.Excluded = true
		return a, nil
	}
	markers := scanMarkers(unit.Code)
	if markers.fileDisabled {
		a.Excluded = true
		return a, nil
	}

	sheet, err := parseUnit(&unit)
	if err != nil {
		a.Malformed = true
		a.Issues = append(a.Issues, Issue{
			FromLinter: linterName,
			Text:       IssueMalformed,
			Severity:   SeverityWarning,
			Pos:        IssuePos{Filename: unit.FilePath, Line: 1},
		})
		return a, nil
	}

	a.Metrics = computeMetrics(sheet, reg)

	eligible, advisory, err := e.collect(&unit, sheet, reg, pctx, markers)
	if err != nil {
		return nil, err
	}
	a.Opportunities = append(a.Opportunities, eligible...)
	a.Opportunities = append(a.Opportunities, advisory...)
	sort.SliceStable(a.Opportunities, func(i, j int) bool { return a.Opportunities[i].start < a.Opportunities[j].start })

	for _, c := range a.Opportunities {
		issue := Issue{
			FromLinter:  linterName,
			Severity:    SeverityWarning,
			SourceLines: sourceLine(unit.Code, c.Location.Line),
			Pos: IssuePos{
				Filename: unit.FilePath,
				Line:     c.Location.Line,
				Column:   c.Location.Column,
			},
		}
		if c.Ambiguous {
			issue.Text = fmt.Sprintf(IssueAmbiguousValue, c.Before, strings.Join(c.Alternatives, ", "))
		} else {
			issue.Text = fmt.Sprintf(IssueHardcodedValue, c.Type, c.Before, c.BasedOn)
		}
		a.Issues = append(a.Issues, issue)
	}
	return a, nil
}

// collect runs the tokenizing passes, merges their candidate lists,
// resolves overlap conflicts and scores everything into the two
// surfaceable buckets.
func (e *Engine) collect(unit *SourceUnit, sheet *stylesheet, reg *Registry, pctx *Context, markers markerSet) (eligible, advisory []Candidate, err error) {
	var all []Candidate
	for _, pass := range e.passes {
		all = append(all, pass.Apply(unit, sheet, reg, pctx)...)
	}
	all = filterSuppressed(all, markers)
	all = resolveOverlaps(all)

	for _, c := range all {
		sig := e.signalsFor(c, sheet, reg, pctx)

		// Contrast guardrail: an auto-applied color change must not
		// reduce the computed contrast ratio.
		if sig.ContrastDelta < -metricEpsilon {
			if e.opts.Strict {
				return nil, nil, &GuardrailError{Candidate: c, Reason: "contrast regression"}
			}
			continue
		}

		score := e.opts.Strategy.Score(c, sig)
		c.Confidence = score

		switch decide(score, sig, e.opts.AutoApply) {
		case DecisionAutoApply:
			eligible = append(eligible, c)
		case DecisionAdvisory:
			advisory = append(advisory, c)
		}
	}
	return eligible, advisory, nil
}

// signalsFor assembles the scorer inputs for one candidate.
func (e *Engine) signalsFor(c Candidate, sheet *stylesheet, reg *Registry, pctx *Context) Signals {
	s := Signals{
		Exact:         c.exact,
		FragileLayout: c.fragile,
		Ambiguous:     c.Ambiguous,
		Insertion:     c.start == c.end,
	}

	if c.BasedOn != "" && !c.Ambiguous {
		for _, name := range strings.Split(c.BasedOn, ", ") {
			if pctx.usageCount(name) > 0 {
				s.UsageConsistent = true
				break
			}
		}
	}
	if fs, ok := pctx.historyFor(c.Type); ok {
		s.HistoryBoost = historyBoost(fs)
	}
	if c.property != "" && pctx.overridden(c.property) {
		s.OverrideConflict = true
	}
	if r := ruleAt(sheet, c.start); r != nil {
		s.ContrastDelta = contrastDelta(c, r, reg)
	}
	return s
}

// ruleAt finds the rule whose body contains an offset.
func ruleAt(sheet *stylesheet, off int) *cssRule {
	for _, r := range sheet.rules {
		if off >= r.start && off <= r.bodyEnd+1 {
			return r
		}
	}
	return nil
}

// resolveOverlaps drops the lower-precedence candidate wherever two
// ranges intersect: color beats typography, tokenizing beats the
// optimizer. Insertions (start == end) never conflict.
func resolveOverlaps(cands []Candidate) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return typePrecedence[cands[i].Type] < typePrecedence[cands[j].Type]
	})

	var kept []Candidate
	for _, c := range cands {
		conflict := false
		for i := len(kept) - 1; i >= 0; i-- {
			p := kept[i]
			if p.end <= c.start {
				break
			}
			if overlaps(p, c) {
				conflict = true
				if typePrecedence[c.Type] < typePrecedence[p.Type] {
					kept[i] = c
				}
				break
			}
		}
		if !conflict {
			kept = append(kept, c)
		}
	}
	return kept
}

func overlaps(a, b Candidate) bool {
	if a.start == a.end || b.start == b.end {
		return false
	}
	return a.start < b.end && b.start < a.end
}

// sourceLine extracts one line of code for issue context.
func sourceLine(code string, line int) []string {
	lines := strings.Split(code, "\n")
	if line < 1 || line > len(lines) {
		return nil
	}
	return []string{strings.TrimRight(lines[line-1], "\r")}
}
