package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/store"
)

// generatedIDLength is the number of hex characters in a generated ID.
const generatedIDLength = 8

// maxIDAttempts bounds retries when a generated ID collides.
const maxIDAttempts = 16

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	GenerateID bool
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add [id] <name> <subject> <score>",
		Short: "Add a student record",
		Long: `Add a student record and save the data file.

The id must be unique. With --generate-id the id argument is omitted and a
random 8-character hex id is assigned.

Example:
  gradebook add S001 Alice Math 85
  gradebook add --generate-id Bob Physics 92.5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.GenerateID {
				return cobra.ExactArgs(3)(cmd, args)
			}
			return cobra.ExactArgs(4)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.GenerateID, "generate-id", false, "assign a random unique id")

	return cmd
}

func runAdd(opts *AddOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, warnings := loadStore(opts.RootOptions, formatter)

	if opts.GenerateID {
		id, err := generateID(s)
		if err != nil {
			_ = formatter.Error("INVALID_ID", err.Error(), nil)
			return WrapExitError(ExitCommandError, "generate id", err)
		}
		args = append([]string{id}, args...)
	}

	r, err := s.Add(args[0], args[1], args[2], strings.TrimSpace(args[3]))
	if err != nil {
		return outputStoreError(formatter, err)
	}

	if err := saveStore(opts.RootOptions, formatter, s, warnings); err != nil {
		return err
	}
	return formatter.Done(fmt.Sprintf("Student %s (%s) added", r.Name, r.ID), r)
}

// generateID returns a short random id not yet present in s.
func generateID(s *store.Store) (string, error) {
	for range maxIDAttempts {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		candidate := strings.ReplaceAll(id.String(), "-", "")[:generatedIDLength]
		if _, exists := s.FindByID(candidate); !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no unique id after %d attempts", maxIDAttempts)
}
