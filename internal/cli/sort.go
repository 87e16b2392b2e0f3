package cli

import (
	"github.com/spf13/cobra"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Descending bool
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort records by score and save the new order",
		Long: `Sort records by score, ascending unless --desc is given, and save the
data file in the new order. Students with equal scores keep their previous
relative order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Descending, "desc", "d", false, "highest score first")

	return cmd
}

func runSort(opts *SortOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, warnings := loadStore(opts.RootOptions, formatter)

	if s.Len() == 0 {
		if formatter.Structured() {
			return formatter.Success(newRecordList(s.Records()))
		}
		renderTable(formatter.Writer, nil)
		return nil
	}

	s.Sort(opts.Descending)
	if err := saveStore(opts.RootOptions, formatter, s, warnings); err != nil {
		return err
	}

	if formatter.Structured() {
		return formatter.Success(newRecordList(s.Records()))
	}
	renderTable(formatter.Writer, s.Records())
	return nil
}
