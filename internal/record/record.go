package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Delimiter separates fields within a serialized record line.
const Delimiter = ","

// FieldCount is the number of fields in a serialized record line.
const FieldCount = 4

// Record holds one student's identifier, name, subject and score.
type Record struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Subject string  `json:"subject" yaml:"subject"`
	Score   float64 `json:"score" yaml:"score"`
}

// New creates a Record from already-validated fields.
func New(id, name, subject string, score float64) Record {
	return Record{ID: id, Name: name, Subject: subject, Score: score}
}

// Serialize renders the record as a single line without a terminator.
func (r Record) Serialize() string {
	return strings.Join([]string{r.ID, r.Name, r.Subject, FormatScore(r.Score)}, Delimiter)
}

// String implements fmt.Stringer using the serialized form.
func (r Record) String() string {
	return r.Serialize()
}

// Parse decodes one serialized line into a Record.
//
// Only the line terminator is stripped. The line must split into exactly
// FieldCount fields and the last field must be a valid score.
func Parse(line string) (Record, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

	fields := strings.Split(trimmed, Delimiter)
	if len(fields) != FieldCount {
		return Record{}, &ParseError{
			Line:   trimmed,
			Field:  "line",
			Reason: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)),
		}
	}

	score, err := ParseScore(fields[3])
	if err != nil {
		return Record{}, &ParseError{
			Line:   trimmed,
			Field:  "score",
			Reason: fmt.Sprintf("invalid score %q", fields[3]),
			Err:    err,
		}
	}

	return New(fields[0], fields[1], fields[2], score), nil
}

// ParseScore parses a score string as a 64-bit float.
// NaN and infinities are rejected.
func ParseScore(s string) (float64, error) {
	score, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("score %q is not a number", s)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("score %q is not a finite number", s)
	}
	return score, nil
}

// FormatScore renders a score in its shortest round-trip decimal form.
// Integral values keep a trailing ".0" so that 85 is written as "85.0".
// Exponent notation is never used: 1e16 is written as "10000000000000000.0".
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ValidateField reports whether a text field can be stored in a record line.
func ValidateField(name, value string) error {
	if strings.ContainsAny(value, Delimiter+"\r\n") {
		return fmt.Errorf("%s %q must not contain %q or a line break", name, value, Delimiter)
	}
	return nil
}
