// Package store provides the in-memory student record store and its
// text-file persistence.
//
// The store is an ordered sequence of records backed by one text resource:
//   - Load: reads the resource once at startup (creating it when missing)
//   - Save: overwrites the resource with the current sequence
//   - Queries: FindByID, Search, Statistics, Records
//   - Mutations: Add, ModifyScore, Delete, Sort
//   - Export: writes a fixed-width report to a separate file
//
// # Persistence
//
// Mutations are in memory only. Nothing is written until Save is called;
// exiting without Save discards the changes.
//
// # Load Policy
//
// A malformed line is skipped and reported as a Warning carrying its line
// number. Valid lines before and after it are loaded. An unreadable resource
// yields an empty store and a single Warning. Blank lines are ignored.
//
// Scores must be finite. Lines holding "nan", "inf" or a value that overflows
// float64 (such as "1e400") are skipped with a PARSE_ERROR warning, even
// though other tools may have written them.
//
// # Uniqueness
//
// Record IDs are unique within a store. Add enforces this; Load does not, so a
// hand-edited file with repeated IDs loads as written and FindByID returns
// the first match.
//
// A Store is not safe for concurrent use.
package store
