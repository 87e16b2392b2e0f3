package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student record",
		Long: `Delete a student record and save the data file.

Asks for confirmation on stdin unless --yes is given. Answering anything
other than "y" cancels the deletion.`,
		Aliases:       []string{"rm"},
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "delete without asking")

	return cmd
}

func runDelete(opts *DeleteOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, warnings := loadStore(opts.RootOptions, formatter)

	confirmed := opts.Yes
	if !confirmed {
		r, ok := s.FindByID(id)
		if ok {
			confirmed = confirm(bufio.NewReader(cmd.InOrStdin()), formatter.GetErrWriter(),
				fmt.Sprintf("Are you sure you want to delete %s? (y/n): ", r.Name))
		}
	}

	res, err := s.Delete(id, confirmed)
	if err != nil {
		return outputStoreError(formatter, err)
	}
	if res.Cancelled {
		return formatter.Done("Operation cancelled", res)
	}

	if err := saveStore(opts.RootOptions, formatter, s, warnings); err != nil {
		return err
	}
	return formatter.Done(fmt.Sprintf("Student %s deleted", res.Record.Name), res)
}

// confirm prints prompt and reports whether the answer is "y".
func confirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}
