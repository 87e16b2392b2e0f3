package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/gradebook/internal/record"
	"github.com/roach88/gradebook/internal/store"
)

// RecordList is the structured payload for commands returning records.
type RecordList struct {
	Count   int             `json:"count" yaml:"count"`
	Records []record.Record `json:"records" yaml:"records"`
}

func newRecordList(records []record.Record) RecordList {
	return RecordList{Count: len(records), Records: records}
}

func heading(w io.Writer, text string) string {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Render(text)
}

// renderTable prints records in the report column layout.
func renderTable(w io.Writer, records []record.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No student data available.")
		return
	}

	fmt.Fprintln(w, heading(w, "=== Student List ==="))
	fmt.Fprintln(w, store.FormatRow("ID", "Name", "Subject", "Score"))
	fmt.Fprintln(w, store.ReportRule)
	for _, r := range records {
		fmt.Fprintln(w, store.FormatRow(r.ID, r.Name, r.Subject, record.FormatScore(r.Score)))
	}
	fmt.Fprintln(w, strings.Repeat("=", len(store.ReportRule)))
}

// renderMatches prints search results one per line.
func renderMatches(w io.Writer, records []record.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No matching student found.")
		return
	}

	fmt.Fprintf(w, "Found %d record(s):\n", len(records))
	for _, r := range records {
		fmt.Fprintf(w, "ID: %s | Name: %s | Subject: %s | Score: %s\n",
			r.ID, r.Name, r.Subject, record.FormatScore(r.Score))
	}
}

// renderStats prints score statistics; the average is shown to two decimals.
func renderStats(w io.Writer, st store.Stats) {
	fmt.Fprintln(w, heading(w, "=== Score Statistics ==="))
	fmt.Fprintf(w, "Total Students: %d\n", st.Count)
	fmt.Fprintf(w, "Average Score: %.2f\n", st.Average)
	fmt.Fprintf(w, "Highest Score: %s\n", record.FormatScore(st.Max))
	fmt.Fprintf(w, "Lowest Score: %s\n", record.FormatScore(st.Min))
}
