package store

import (
	"cmp"
	"slices"

	"github.com/roach88/gradebook/internal/record"
)

// DeleteResult reports the outcome of Delete.
type DeleteResult struct {
	// Record is the record that was targeted.
	Record record.Record `json:"record" yaml:"record"`

	// Cancelled is true when deletion was not confirmed and nothing changed.
	Cancelled bool `json:"cancelled" yaml:"cancelled"`
}

// Add appends a new record.
//
// The score is validated first, then the fields, then ID uniqueness. The
// store is unchanged when any check fails.
func (s *Store) Add(id, name, subject, score string) (record.Record, error) {
	value, err := record.ParseScore(score)
	if err != nil {
		return record.Record{}, newInvalidScoreError(id, err)
	}

	if id == "" {
		return record.Record{}, &Error{Code: ErrCodeInvalidID, Message: "id must not be empty"}
	}
	for _, f := range []struct{ name, value string }{{"id", id}, {"name", name}, {"subject", subject}} {
		if err := record.ValidateField(f.name, f.value); err != nil {
			return record.Record{}, &Error{Code: ErrCodeInvalidField, Message: "field cannot be stored", ID: id, Err: err}
		}
	}

	if s.indexOf(id) >= 0 {
		return record.Record{}, newDuplicateError(id)
	}

	r := record.New(id, name, subject, value)
	s.records = append(s.records, r)
	return r, nil
}

// ModifyScore replaces the score of the record with the given ID.
// Returns the updated record.
func (s *Store) ModifyScore(id, newScore string) (record.Record, error) {
	i := s.indexOf(id)
	if i < 0 {
		return record.Record{}, newNotFoundError(id)
	}

	value, err := record.ParseScore(newScore)
	if err != nil {
		return record.Record{}, newInvalidScoreError(id, err)
	}

	s.records[i].Score = value
	return s.records[i], nil
}

// Delete removes the record with the given ID when confirmed is true.
// An unconfirmed delete changes nothing and reports Cancelled.
func (s *Store) Delete(id string, confirmed bool) (DeleteResult, error) {
	i := s.indexOf(id)
	if i < 0 {
		return DeleteResult{}, newNotFoundError(id)
	}

	target := s.records[i]
	if !confirmed {
		return DeleteResult{Record: target, Cancelled: true}, nil
	}

	s.records = slices.Delete(s.records, i, i+1)
	return DeleteResult{Record: target}, nil
}

// Sort reorders records by score. Records with equal scores keep their
// relative order.
func (s *Store) Sort(descending bool) {
	slices.SortStableFunc(s.records, func(a, b record.Record) int {
		if descending {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Score, b.Score)
	})
}
