package cssenhance

// AutoApplyMode controls how scored candidates are promoted.
type AutoApplyMode string

// Recognized auto-apply modes.
const (
	// AutoApplySafe obeys the confidence gates and guardrails (default).
	AutoApplySafe AutoApplyMode = "safe"
	// AutoApplyOff returns every surfaceable candidate as advisory only.
	AutoApplyOff AutoApplyMode = "off"
	// AutoApplyAll bypasses the confidence gate: everything above the
	// advisory floor is applied. Guardrails and batch verification still
	// run. Not recommended.
	AutoApplyAll AutoApplyMode = "all"
)

// DefaultMaxChanges is the per-file change cap.
const DefaultMaxChanges = 5

// Options configures one engine instance.
type Options struct {
	AutoApply  AutoApplyMode
	MaxChanges int
	// Strict surfaces guardrail violations as hard errors instead of
	// silently dropping the offending candidate.
	Strict bool
	// Strategy combines per-candidate signals into a confidence score.
	// Nil selects the built-in additive strategy.
	Strategy ScoringStrategy
	// ExcludePatterns replaces the default vendor/build/generated path
	// patterns when non-empty.
	ExcludePatterns []string
}

func (o Options) withDefaults() Options {
	if o.AutoApply == "" {
		o.AutoApply = AutoApplySafe
	}
	if o.MaxChanges <= 0 {
		o.MaxChanges = DefaultMaxChanges
	}
	if o.Strategy == nil {
		o.Strategy = defaultStrategy{}
	}
	if len(o.ExcludePatterns) == 0 {
		o.ExcludePatterns = defaultExcludePatterns
	}
	return o
}

// FeedbackStats records how suggestions for one rule/component pair were
// historically received. Accepted suggestions boost future confidence,
// reverted ones decay it.
type FeedbackStats struct {
	Accepted int `json:"accepted"`
	Reverted int `json:"reverted"`
}

// Context carries project knowledge into one enhancement invocation.
// All fields are optional; a nil Context behaves like an empty one.
type Context struct {
	// ComponentType names the kind of component being enhanced
	// ("button", "card", ...). Used for usage-consistency and history
	// signals.
	ComponentType string
	// Usage counts observed token uses in sibling components of the same
	// type, keyed by token name.
	Usage map[string]int
	// Overrides pins properties the project manages by hand. A property
	// present here is never rewritten.
	Overrides map[string]string
	// History keys are "ruleType/componentType".
	History map[string]FeedbackStats
}

func (c *Context) usageCount(token string) int {
	if c == nil || c.Usage == nil {
		return 0
	}
	return c.Usage[token]
}

func (c *Context) overridden(property string) bool {
	if c == nil || c.Overrides == nil {
		return false
	}
	_, ok := c.Overrides[property]
	return ok
}

func (c *Context) historyFor(ruleType string) (FeedbackStats, bool) {
	if c == nil || c.History == nil {
		return FeedbackStats{}, false
	}
	fs, ok := c.History[ruleType+"/"+c.ComponentType]
	return fs, ok
}
