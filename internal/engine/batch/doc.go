// Package batch runs independent work items with bounded concurrency.
//
// Key features:
//   - Results keep input order regardless of completion order
//   - A failing item is recorded on its Outcome and never stops the others
//   - Context cancellation stops scheduling; unscheduled items carry ctx.Err()
//   - Progress tracking with callbacks for UI updates or logging
//
// The engine uses it to evaluate every proposal in a portfolio.
package batch
