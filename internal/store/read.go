package store

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/gradebook/internal/record"
)

// Stats summarizes the scores held by a store.
type Stats struct {
	Count   int     `json:"count" yaml:"count"`
	Average float64 `json:"average" yaml:"average"`
	Max     float64 `json:"max" yaml:"max"`
	Min     float64 `json:"min" yaml:"min"`
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in current order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) Records() []record.Record {
	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out
}

// FindByID returns the first record whose ID equals id exactly.
func (s *Store) FindByID(id string) (record.Record, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return record.Record{}, false
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Search returns every record whose ID or name contains keyword, ignoring case.
// Results follow store order. Returns an empty slice (not nil) when nothing matches.
func (s *Store) Search(keyword string) []record.Record {
	fold := cases.Fold()
	needle := fold.String(keyword)

	found := []record.Record{}
	for _, r := range s.records {
		if strings.Contains(fold.String(r.ID), needle) || strings.Contains(fold.String(r.Name), needle) {
			found = append(found, r)
		}
	}
	return found
}

// Statistics returns count, mean, maximum and minimum of all scores.
// Returns ErrNoData when the store is empty.
func (s *Store) Statistics() (Stats, error) {
	if len(s.records) == 0 {
		return Stats{}, ErrNoData
	}

	st := Stats{
		Count: len(s.records),
		Max:   s.records[0].Score,
		Min:   s.records[0].Score,
	}
	var sum float64
	for _, r := range s.records {
		sum += r.Score
		st.Max = max(st.Max, r.Score)
		st.Min = min(st.Min, r.Score)
	}
	st.Average = sum / float64(st.Count)
	return st, nil
}
