package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/gradebook/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	DataFile   string
	ReportFile string
	ConfigPath string

	// DiscardInvalid allows saving after a load that skipped lines.
	DiscardInvalid bool

	// Logger is built in PersistentPreRunE; nil means discard.
	Logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the gradebook CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gradebook",
		Short: "gradebook - student score records",
		Long: `Manage a small collection of student records (id, name, subject, score)
kept in a comma-delimited text file.

Run "gradebook shell" for the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVarP(&opts.DataFile, "file", "f", "", "student data file (default from config, then "+config.DefaultDataFile+")")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: search for gradebook.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.DiscardInvalid, "discard-invalid", false, "save even if lines that failed to load would be dropped")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewModifyCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve merges config file values under explicit flags and builds the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, used, err := config.Load(o.ConfigPath)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return WrapExitError(ExitCommandError, "load config", err)
	}

	if !cmd.Flags().Changed("format") {
		o.Format = cfg.Format
	}
	if o.DataFile == "" {
		o.DataFile = cfg.DataFile
	}
	if o.ReportFile == "" {
		o.ReportFile = cfg.ReportFile
	}

	if !isValidFormat(o.Format) {
		msg := fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats)
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
		return NewExitError(ExitCommandError, msg)
	}

	o.Logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	if used != "" {
		o.Logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// dataFile returns the resolved data file path.
func (o *RootOptions) dataFile() string {
	if o.DataFile == "" {
		return config.DefaultDataFile
	}
	return o.DataFile
}

// reportFile returns the resolved report path.
func (o *RootOptions) reportFile() string {
	if o.ReportFile == "" {
		return config.DefaultReportFile
	}
	return o.ReportFile
}

func (o *RootOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// newLogger builds a console logger on w: warn level, debug when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
