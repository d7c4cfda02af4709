// Package admission decides whether a submission may proceed before any
// validation work happens.
//
// # Contract
//
// Two independent guards share this package:
//
//  1. Limiter, a fixed-window rate limiter keyed by client identifier.
//     The window resets wholesale at its boundary rather than sliding;
//     denied attempts still charge the window so probing cannot reset it.
//  2. DuplicateGuard, a per-student debounce. A student may not submit
//     more than once per debounce period, keyed by name rather than
//     network identity, so it holds even behind shared proxies.
//
// Both stores are process-wide mutex-guarded maps. Every check is an atomic
// read-check-write per key, so two concurrent requests for the same key
// cannot both slip under the limit. Background sweeps run on independent
// tickers and only delete entries that are already expired, which is safe to
// interleave with live checks: a check after deletion simply recreates the
// entry as if fresh.
//
// # Types
//
//	type Limiter struct { ... }
//	func NewLimiter(logger *zap.Logger, opts LimiterOptions) *Limiter
//	func (l *Limiter) Check(identifier string) types.Decision
//	func (l *Limiter) Run(ctx context.Context)
//
//	type DuplicateGuard struct { ... }
//	func NewDuplicateGuard(logger *zap.Logger, opts GuardOptions) *DuplicateGuard
//	func (g *DuplicateGuard) Check(studentName string) (time.Duration, bool)
//	func (g *DuplicateGuard) Run(ctx context.Context)
package admission
