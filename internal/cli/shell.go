package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/store"
)

const shellMenu = `
========= Student Grade Management System =========
1. Show all students
2. Add a new student
3. Modify student score
4. Delete student
5. Search student
6. Sort students by score
7. View statistics
8. Export report
9. Save and Exit
===================================================
`

// errInputClosed ends the shell when stdin reaches EOF.
var errInputClosed = errors.New("input closed")

// NewShellCommand creates the interactive shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu",
		Long: `Run the interactive menu.

The data file is loaded once. Changes stay in memory until "9. Save and Exit";
closing input (Ctrl-D) exits without saving.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}

	return cmd
}

// shell holds the state of one interactive session.
type shell struct {
	opts     *RootOptions
	f        *OutputFormatter
	in       *bufio.Reader
	store    *store.Store
	warnings []store.Warning
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	// The menu is always rendered as text.
	textOpts := *opts
	textOpts.Format = "text"
	formatter := newFormatter(&textOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, warnings := loadStore(&textOpts, formatter)
	sh := &shell{
		opts:     &textOpts,
		f:        formatter,
		in:       bufio.NewReader(cmd.InOrStdin()),
		store:    s,
		warnings: warnings,
	}
	fmt.Fprintf(formatter.Writer, "Loaded %d student record(s).\n", sh.store.Len())
	return sh.loop()
}

func (sh *shell) loop() error {
	out := sh.f.Writer
	for {
		fmt.Fprint(out, shellMenu)
		choice, err := sh.prompt("Enter your choice (1-9): ")
		if err != nil {
			fmt.Fprintln(out, "\nInput closed. Exiting without saving.")
			return nil
		}

		switch choice {
		case "1":
			renderTable(out, sh.store.Records())
		case "2":
			err = sh.add()
		case "3":
			err = sh.modify()
		case "4":
			err = sh.delete()
		case "5":
			err = sh.search()
		case "6":
			err = sh.sort()
		case "7":
			sh.stats()
		case "8":
			err = sh.export()
		case "9":
			if err := saveStore(sh.opts, sh.f, sh.store, sh.warnings); err != nil {
				return err
			}
			fmt.Fprintln(out, "All data saved. Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice, please try again.")
		}

		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(out, "\nInput closed. Exiting without saving.")
			return nil
		}
	}
}

// prompt prints label and returns the trimmed answer.
func (sh *shell) prompt(label string) (string, error) {
	fmt.Fprint(sh.f.Writer, label)
	line, err := sh.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", errInputClosed
	}
	return strings.TrimSpace(line), nil
}

// fail renders a store error without ending the session.
func (sh *shell) fail(err error) {
	_ = outputStoreError(sh.f, err)
}

func (sh *shell) add() error {
	id, err := sh.prompt("Enter Student ID: ")
	if err != nil {
		return err
	}
	if _, exists := sh.store.FindByID(id); exists {
		fmt.Fprintln(sh.f.Writer, "Student ID already exists.")
		return nil
	}

	var fields [3]string
	for i, label := range []string{"Enter Name: ", "Enter Subject: ", "Enter Score: "} {
		if fields[i], err = sh.prompt(label); err != nil {
			return err
		}
	}

	r, err := sh.store.Add(id, fields[0], fields[1], fields[2])
	if err != nil {
		sh.fail(err)
		return nil
	}
	return sh.f.Done(fmt.Sprintf("Student %s added successfully.", r.Name), r)
}

func (sh *shell) modify() error {
	id, err := sh.prompt("Enter Student ID to modify: ")
	if err != nil {
		return err
	}
	r, ok := sh.store.FindByID(id)
	if !ok {
		fmt.Fprintln(sh.f.Writer, "Student not found.")
		return nil
	}

	score, err := sh.prompt(fmt.Sprintf("Enter new score for %s: ", r.Name))
	if err != nil {
		return err
	}
	updated, err := sh.store.ModifyScore(id, score)
	if err != nil {
		sh.fail(err)
		return nil
	}
	return sh.f.Done(fmt.Sprintf("Updated score for %s to %s.", updated.Name, score), updated)
}

func (sh *shell) delete() error {
	id, err := sh.prompt("Enter Student ID to delete: ")
	if err != nil {
		return err
	}
	r, ok := sh.store.FindByID(id)
	if !ok {
		fmt.Fprintln(sh.f.Writer, "Student not found.")
		return nil
	}

	answer, err := sh.prompt(fmt.Sprintf("Are you sure you want to delete %s? (y/n): ", r.Name))
	if err != nil {
		return err
	}
	res, err := sh.store.Delete(id, strings.ToLower(answer) == "y")
	if err != nil {
		sh.fail(err)
		return nil
	}
	if res.Cancelled {
		fmt.Fprintln(sh.f.Writer, "Operation cancelled.")
		return nil
	}
	return sh.f.Done(fmt.Sprintf("Student %s deleted successfully.", res.Record.Name), res)
}

func (sh *shell) search() error {
	keyword, err := sh.prompt("Enter Student ID or Name to search: ")
	if err != nil {
		return err
	}
	renderMatches(sh.f.Writer, sh.store.Search(keyword))
	return nil
}

func (sh *shell) sort() error {
	if sh.store.Len() == 0 {
		fmt.Fprintln(sh.f.Writer, "No data to sort.")
		return nil
	}

	fmt.Fprintln(sh.f.Writer, "1. Sort by Score Ascending")
	fmt.Fprintln(sh.f.Writer, "2. Sort by Score Descending")
	choice, err := sh.prompt("Choose option (1/2): ")
	if err != nil {
		return err
	}

	sh.store.Sort(choice == "2")
	if err := sh.f.Done("Students sorted successfully.", nil); err != nil {
		return err
	}
	renderTable(sh.f.Writer, sh.store.Records())
	return nil
}

func (sh *shell) stats() {
	st, err := sh.store.Statistics()
	if errors.Is(err, store.ErrNoData) {
		fmt.Fprintln(sh.f.Writer, "No data to analyze.")
		return
	}
	renderStats(sh.f.Writer, st)
}

func (sh *shell) export() error {
	def := sh.opts.reportFile()
	path, err := sh.prompt(fmt.Sprintf("Enter report file name (default: %s): ", def))
	if err != nil {
		return err
	}
	if path == "" {
		path = def
	}

	if err := sh.store.Export(path); err != nil {
		sh.fail(err)
		return nil
	}
	return sh.f.Done(fmt.Sprintf("Report exported successfully to %s", path), nil)
}
