package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/gradebook/internal/record"
)

// Store is an ordered, in-memory collection of records backed by a text file.
// Insertion order is kept until Sort reorders the sequence.
type Store struct {
	records []record.Record
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load, save and export diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Warning is a non-fatal diagnostic produced by Load.
type Warning struct {
	// Line is the 1-based line number, or 0 when the whole resource is affected.
	Line int

	// Err is a *Error with code PARSE_ERROR or IO_ERROR.
	Err error
}

// String renders the warning for display.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %v", w.Line, w.Err)
	}
	return w.Err.Error()
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		records: []record.Record{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the resource at path into a new store.
//
// A missing resource is created empty. Malformed lines are skipped and
// reported as warnings; an unreadable resource yields an empty store and one
// warning. Load never fails outright.
func Load(path string, opts ...Option) (*Store, []Warning) {
	s := New(opts...)
	log := s.logger.With(zap.String("path", path))

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Debug("resource not found, creating")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			w := Warning{Err: newIOError("create resource", path, err)}
			log.Debug("load warning", zap.String("warning", w.String()))
			return s, []Warning{w}
		}
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		w := Warning{Err: newIOError("read resource", path, err)}
		log.Debug("load warning", zap.String("warning", w.String()))
		return s, []Warning{w}
	}

	var warnings []Warning
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		r, err := record.Parse(line)
		if err != nil {
			w := Warning{
				Line: i + 1,
				Err: &Error{
					Code:    ErrCodeParse,
					Message: "malformed record skipped",
					Path:    path,
					Err:     err,
				},
			}
			log.Debug("load warning", zap.String("warning", w.String()))
			warnings = append(warnings, w)
			continue
		}
		s.records = append(s.records, r)
	}

	log.Debug("loaded records", zap.Int("count", len(s.records)), zap.Int("skipped", len(warnings)))
	return s, warnings
}

// Save overwrites the resource at path with the current sequence, one
// serialized record per line.
//
// The content is written to a temporary file in the same directory and then
// renamed over path, so a failed Save leaves the previous content in place.
func (s *Store) Save(path string) error {
	var b strings.Builder
	for _, r := range s.records {
		b.WriteString(r.Serialize())
		b.WriteByte('\n')
	}

	if err := writeFileReplace(path, []byte(b.String())); err != nil {
		return err
	}

	s.logger.Debug("saved records", zap.String("path", path), zap.Int("count", len(s.records)))
	return nil
}

// writeFileReplace writes data to path through a temp file and rename.
//
// A symlinked path is resolved first so the link keeps pointing at the
// updated target, and an existing file keeps its permission bits.
func writeFileReplace(path string, data []byte) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return newIOError("open for writing", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return newIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return newIOError("write", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return newIOError("write", path, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return newIOError("replace", path, err)
	}
	return nil
}
