// Package diagnostic provides structured errors, warnings and infos about
// layout tables.
//
// Key capabilities:
//   - Per-composite and per-field findings with stable codes
//   - Suggested alternatives (renamed fields or composites)
//   - A combined error for callers that only need pass or fail
package diagnostic
