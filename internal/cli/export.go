package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExportResult is the structured payload for the export command.
type ExportResult struct {
	Path  string `json:"path" yaml:"path"`
	Count int    `json:"count" yaml:"count"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write a fixed-width report of all records",
		Long: `Write a fixed-width report of all records to path, or to the configured
report file (report.txt by default). The data file is not modified.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.reportFile()
			if len(args) == 1 && args[0] != "" {
				path = args[0]
			}
			return runExport(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, _ := loadStore(opts, formatter)

	if err := s.Export(path); err != nil {
		return outputStoreError(formatter, err)
	}
	return formatter.Done(fmt.Sprintf("Report exported to %s", path), ExportResult{Path: path, Count: s.Len()})
}
