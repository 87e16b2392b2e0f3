// Package record defines the student record value type and its line codec.
//
// A record is persisted as one line of four comma-separated fields in fixed
// order:
//
//	id,name,subject,score
//
// There is no quoting or escaping. Field values must not contain the comma
// delimiter or a line terminator; such records cannot be represented in the
// file format and are rejected before they reach it.
package record
