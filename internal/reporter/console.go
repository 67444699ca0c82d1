package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/internal/analyzer"
)

// ConsoleReporter writes annotated findings as line-oriented text.
// Items carrying free-text commentary are printed in full, commentary
// included. Items with only a boolean verdict are printed as a single
// bulleted line and only when flagged. Empty input produces no output.
type ConsoleReporter struct {
	out    io.Writer
	logger hclog.Logger
}

// NewConsoleReporter returns a reporter writing to out.
func NewConsoleReporter(out io.Writer, logger hclog.Logger) *ConsoleReporter {
	return &ConsoleReporter{out: out, logger: logger}
}

// Report prints the annotated findings in the order given. It never
// mutates its input and is safe to call repeatedly.
func (r *ConsoleReporter) Report(_ context.Context, items []analyzer.AnalyzedFinding) error {
	printed := 0
	for _, item := range items {
		var err error
		switch {
		case item.Annotation.Commentary != "":
			_, err = fmt.Fprintf(r.out, "%s\n%s\n\n", item.Finding.String(), item.Annotation.Commentary)
			printed++
		case item.Annotation.Flagged:
			_, err = fmt.Fprintf(r.out, "* %s\n", item.Finding.String())
			printed++
		}
		if err != nil {
			return fmt.Errorf("console report write failed: %w", err)
		}
	}
	r.logger.Debug("console report finished", "items", len(items), "printed", printed)
	return nil
}
