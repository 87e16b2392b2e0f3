package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/gradebook/internal/store"
)

// loadStore loads the configured data file and reports load warnings.
// Warnings never abort the command, but they block saveStore.
func loadStore(opts *RootOptions, f *OutputFormatter) (*store.Store, []store.Warning) {
	path := opts.dataFile()
	s, warnings := store.Load(path, store.WithLogger(opts.logger()))
	for _, w := range warnings {
		f.Warn("%s: %s", path, w)
	}
	f.VerboseLog("Loaded %d record(s) from %s", s.Len(), path)
	return s, warnings
}

// saveStore writes the store back to the configured data file.
//
// Saving rewrites the whole file, so lines skipped at load time would be
// lost. When the load produced warnings the save is refused unless
// --discard-invalid was given.
func saveStore(opts *RootOptions, f *OutputFormatter, s *store.Store, warnings []store.Warning) error {
	path := opts.dataFile()
	if len(warnings) > 0 && !opts.DiscardInvalid {
		code, exit := errorCode(warnings[0].Err)
		msg := fmt.Sprintf("%s had %d load warning(s); not saving (use --discard-invalid to drop the skipped lines)",
			path, len(warnings))
		_ = f.Error(code, msg, nil)
		return WrapExitError(exit, msg, warnings[0].Err)
	}
	if err := s.Save(path); err != nil {
		return outputStoreError(f, err)
	}
	f.VerboseLog("Saved %d record(s) to %s", s.Len(), path)
	return nil
}

// errorCode maps a store error to its CLI error code and exit code.
func errorCode(err error) (string, int) {
	if errors.Is(err, store.ErrNoData) {
		return "NO_DATA", ExitFailure
	}

	var se *store.Error
	if errors.As(err, &se) {
		if se.Code == store.ErrCodeIO {
			return string(se.Code), ExitCommandError
		}
		return string(se.Code), ExitFailure
	}
	return "ERROR", ExitCommandError
}

// outputStoreError renders a store error and returns the matching ExitError.
func outputStoreError(f *OutputFormatter, err error) error {
	code, exit := errorCode(err)
	message := err.Error()

	var se *store.Error
	if errors.As(err, &se) {
		message = se.Message
		if se.Err != nil {
			message += ": " + se.Err.Error()
		}
	}

	_ = f.Error(code, message, nil)
	return WrapExitError(exit, code, err)
}
