// Package validator implements the flow validation engine.
//
// The engine is a set of independent passes that read the same Graph snapshot and
// append findings to one Collector:
//
//   - structural:   node-count bounds and the unique start block
//   - reachability: blocks not referenced by any connection
//   - connection:   dangling and self-referencing connections
//   - cycle:        loops reachable from the start block
//   - dataflow:     {{variable}} references without a declaration
//   - content:      per-kind content rules (message, delay, question)
//   - webhook:      URL format, HTTPS and private-address rejection
//
// Passes never mutate the flow and perform no I/O.
package validator
