package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/store"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Aliases:       []string{"statistics"},
		Short:         "Show score count, average, maximum and minimum",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, _ := loadStore(opts, formatter)

	st, err := s.Statistics()
	if errors.Is(err, store.ErrNoData) && !formatter.Structured() {
		fmt.Fprintln(formatter.Writer, "No data to analyze.")
		return NewExitError(ExitFailure, "no data")
	}
	if err != nil {
		return outputStoreError(formatter, err)
	}

	if formatter.Structured() {
		return formatter.Success(st)
	}
	renderStats(formatter.Writer, st)
	return nil
}
