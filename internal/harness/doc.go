// Package harness runs scripted scenarios against the student record store.
//
// A scenario seeds a store, executes a flow of store operations, checks the
// outcome of each step and evaluates assertions over the resulting trace and
// final records. Traces are deterministic so they can be compared against
// golden files.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: sort_stability
//	description: "Equal scores keep their relative order"
//	data:                      # optional initial file lines, loaded with store.Load
//	  - "A,A,Math,70.0"
//	setup:                     # records added before the flow; must succeed
//	  - { id: B, name: B, subject: Math, score: "50" }
//	flow:
//	  - op: sort
//	    args: { descending: false }
//	    expect:
//	      outcome: ok
//	      result: { ids: [B, A] }
//	assertions:
//	  - type: record_order
//	    ids: [B, A]
//
// # Operations
//
//   - add: id, name, subject, score
//   - modify: id, score
//   - delete: id, confirmed
//   - find: id
//   - search: keyword
//   - sort: descending
//   - stats
//   - save, reload: write the scenario file / load it back
//   - export: path (relative to the scenario's scratch directory)
//
// Each step yields one TraceEvent whose Outcome is "ok", "cancelled",
// "NO_DATA" or a store error code such as DUPLICATE_ID. A find miss is
// NOT_FOUND.
//
// # Assertion Types
//
//   - trace_contains: an op appears in the trace with matching args
//   - trace_order: ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - final_state: the record with an id has the expected fields (or is absent)
//   - record_order: the final record ids, in order
//
// Every scenario runs in its own temporary directory.
package harness
