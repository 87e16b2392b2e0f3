package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/record"
)

// NewModifyCommand creates the modify command.
func NewModifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "modify <id> <score>",
		Short:         "Change a student's score",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModify(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runModify(opts *RootOptions, id, score string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, warnings := loadStore(opts, formatter)

	r, err := s.ModifyScore(id, strings.TrimSpace(score))
	if err != nil {
		return outputStoreError(formatter, err)
	}

	if err := saveStore(opts, formatter, s, warnings); err != nil {
		return err
	}
	return formatter.Done(fmt.Sprintf("Updated score for %s to %s", r.Name, record.FormatScore(r.Score)), r)
}
