// Package pipeline sequences the admission, validation, and delivery of one
// reclamation submission.
//
// # Contract
//
// Process runs these steps in order, short-circuiting on the first failure:
//
//  1. Origin policy check (substring match, empty allow-list permits all)
//  2. Rate-limit check for the client identifier
//  3. Body decode and field validation (errors aggregated, not first-only)
//  4. Spam heuristics over the trimmed, pre-escape reclamation body
//  5. Duplicate-submission guard keyed by sanitized student name
//  6. Notification rendering
//  7. Synchronous hand-off to the external notifier
//
// The rate-limit charge in step 2 and the duplicate-guard bookkeeping in
// step 5 persist regardless of how the request ultimately resolves. Every
// failure maps to a typed error from internal/types; the HTTP handler
// translates those to 400/403/429/500 with a structured JSON body.
package pipeline
