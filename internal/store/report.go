package store

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/gradebook/internal/record"
)

// ReportTitle is the first line of an exported report.
const ReportTitle = "=== Student Report ==="

// Report column widths.
const (
	IDWidth      = 10
	NameWidth    = 15
	SubjectWidth = 15
	ScoreWidth   = 10
)

// ReportRule separates the header and closes the table.
var ReportRule = strings.Repeat("-", 50)

// FormatRow renders one left-justified, fixed-width report row.
func FormatRow(id, name, subject, score string) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s",
		IDWidth, id, NameWidth, name, SubjectWidth, subject, ScoreWidth, score)
}

// WriteReport renders the fixed-width report of all records to w.
func (s *Store) WriteReport(w io.Writer) error {
	lines := make([]string, 0, len(s.records)+4)
	lines = append(lines, ReportTitle, FormatRow("ID", "Name", "Subject", "Score"), ReportRule)
	for _, r := range s.records {
		lines = append(lines, FormatRow(r.ID, r.Name, r.Subject, record.FormatScore(r.Score)))
	}
	lines = append(lines, ReportRule)

	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Export writes the report to path, replacing any existing file.
// The store is not modified.
func (s *Store) Export(path string) error {
	var buf bytes.Buffer
	if err := s.WriteReport(&buf); err != nil {
		return newIOError("render report", path, err)
	}
	if err := writeFileReplace(path, buf.Bytes()); err != nil {
		return err
	}

	s.logger.Debug("exported report", zap.String("path", path), zap.Int("count", len(s.records)))
	return nil
}
