package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/record"
)

// newTestStore builds an in-memory store holding records in order.
func newTestStore(t *testing.T, records ...record.Record) *Store {
	t.Helper()
	s := New()
	for _, r := range records {
		_, err := s.Add(r.ID, r.Name, r.Subject, record.FormatScore(r.Score))
		require.NoError(t, err)
	}
	return s
}

// ids returns the IDs of records in order.
func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
