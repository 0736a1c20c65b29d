// Package cssenhance rewrites literal design values in CSS, HTML and JSX
// fragments into design-token references, deterministically and under
// confidence gates.
//
// # Pipeline
//
// A token registry is normalized once, then each source unit flows
// through independent rule passes (colors, spacing, radii, elevation,
// typography, animation, gradients, interaction states), a confidence
// scorer, and a progressive application controller that applies small
// batches with structural-metric verification and a per-file change cap:
//
//	reg, err := cssenhance.LoadRegistry(tokens, "v1")
//	result, err := cssenhance.Enhance(code, "css", reg, nil, cssenhance.Options{})
//	// result.Code, result.Changes, result.Advisory, result.MetricsDelta
//
// Re-running Enhance on its own output produces zero changes: every
// applied rewrite is a var(--token) reference, which no pass matches
// again.
//
// # Guarantees
//
//   - len(result.Changes) never exceeds Options.MaxChanges (default 5).
//   - Ambiguous values (two tokens, one value) are never auto-applied;
//     exactly one advisory candidate is surfaced instead.
//   - Auto-applied color changes never reduce the computed contrast
//     ratio.
//   - Vendor/build/generated paths and files carrying ignore markers
//     yield zero candidates.
//
// # Ignore markers
//
// Three comment markers are recognized verbatim in any comment style:
//
//	/* cssenhance:disable-file */
//	/* cssenhance:disable-next-line */
//	color: #1f2937; /* cssenhance:disable-line */
//
// # Caching
//
// EnhanceCached wraps the pipeline with a signature-keyed result cache
// that coalesces concurrent computations per key and fails open when the
// backend is unavailable.
//
// # CLI Tool
//
// A CLI is provided under cmd/cssenhance:
//
//	go install github.com/yacobolo/cssenhance/cmd/cssenhance@latest
package cssenhance

// Analyze is the package-level read-only operation: it reports metrics,
// issues and opportunities without mutating anything.
func Analyze(code, codeType string, reg *Registry, pctx *Context, opts Options) (*Analysis, error) {
	return New(opts).Analyze(SourceUnit{Code: code, Language: codeType}, reg, pctx)
}

// Enhance runs the full pipeline without caching.
func Enhance(code, codeType string, reg *Registry, pctx *Context, opts Options) (*EnhancementResult, error) {
	return New(opts).Enhance(SourceUnit{Code: code, Language: codeType}, reg, pctx)
}

// EnhanceCached runs the full pipeline through the given result cache.
func EnhanceCached(code, codeType string, reg *Registry, pctx *Context, opts Options, cache *ResultCache) (*EnhancementResult, error) {
	return New(opts).EnhanceCached(SourceUnit{Code: code, Language: codeType}, reg, pctx, cache)
}
