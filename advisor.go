package cssenhance

import (
	"context"
	"time"
)

// DefaultAdvisoryTimeout bounds the out-of-band suggestion channel.
const DefaultAdvisoryTimeout = 2 * time.Second

// SuggestAsync computes advisory opportunities out of band. It never
// blocks or gates the deterministic path: the channel is buffered, the
// work runs under its own timeout, and abandoning the channel has no side
// effects. A slow or failed advisory run simply closes the channel
// without sending.
func (e *Engine) SuggestAsync(ctx context.Context, unit SourceUnit, reg *Registry, pctx *Context, timeout time.Duration) <-chan []Candidate {
	if timeout <= 0 {
		timeout = DefaultAdvisoryTimeout
	}
	out := make(chan []Candidate, 1)

	go func() {
		defer close(out)

		done := make(chan []Candidate, 1)
		go func() {
			analysis, err := e.Analyze(unit, reg, pctx)
			if err != nil {
				done <- nil
				return
			}
			done <- analysis.Opportunities
		}()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
		case cands := <-done:
			if len(cands) > 0 {
				out <- cands
			}
		}
	}()

	return out
}
