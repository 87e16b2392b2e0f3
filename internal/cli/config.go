package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the gradebook config file",
	}

	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))

	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:           "init [path]",
		Short:         "Write a default gradebook.yaml",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			path := config.FileName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path, force); err != nil {
				_ = formatter.Error("CONFIG_ERROR", err.Error(), nil)
				return WrapExitError(ExitCommandError, "config init", err)
			}
			return formatter.Done(fmt.Sprintf("Wrote %s", path), map[string]string{"path": path})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			effective := config.Config{
				DataFile:   rootOpts.dataFile(),
				ReportFile: rootOpts.reportFile(),
				Format:     rootOpts.Format,
			}

			if formatter.Structured() {
				return formatter.Success(effective)
			}
			fmt.Fprintf(formatter.Writer, "data_file: %s\nreport_file: %s\nformat: %s\n",
				effective.DataFile, effective.ReportFile, effective.Format)
			return nil
		},
	}
}
