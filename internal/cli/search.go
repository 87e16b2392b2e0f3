package cli

import (
	"github.com/spf13/cobra"
)

// SearchResult is the structured payload for the search command.
type SearchResult struct {
	Keyword    string `json:"keyword" yaml:"keyword"`
	RecordList `yaml:",inline"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find students by id or name",
		Long: `Find students whose id or name contains the keyword, ignoring case.

Example:
  gradebook search ali`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSearch(opts *RootOptions, keyword string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s, _ := loadStore(opts, formatter)

	found := s.Search(keyword)
	if formatter.Structured() {
		return formatter.Success(SearchResult{Keyword: keyword, RecordList: newRecordList(found)})
	}

	renderMatches(formatter.Writer, found)
	return nil
}
