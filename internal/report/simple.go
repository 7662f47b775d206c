package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds URLs and scores to every step.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	for _, r := range summary.Results {
		w.writeResult(&sb, r)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *Summary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "WIKINAV %s\n", strings.ToUpper(summary.Mode))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Start:   %s\n", summary.Start)
	fmt.Fprintf(sb, "Target:  %s\n", summary.Target)
	if summary.Context != "" {
		fmt.Fprintf(sb, "Context: %s (%s)\n", summary.Context, summary.ContextLang)
	}
	fmt.Fprintf(sb, "Elapsed: %s\n", summary.Elapsed.Round(time.Millisecond))
	sb.WriteString("\n")
}

// writeResult writes one path.
func (w *SimpleWriter) writeResult(sb *strings.Builder, r Result) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	if r.Role != "" {
		fmt.Fprintf(sb, "%s (%s)\n", r.Strategy, r.Role)
	} else {
		fmt.Fprintf(sb, "%s\n", r.Strategy)
	}
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Status:  %s (%s)\n", statusText(r.Path.Status), r.Path.Status)
	fmt.Fprintf(sb, "Steps:   %d\n", r.Path.Len())
	fmt.Fprintf(sb, "Visited: %d\n\n", r.Path.Visited)

	if r.Path.Len() == 0 {
		sb.WriteString("  (no path)\n\n")
		return
	}

	for i, step := range r.Path.Steps {
		marker := "->"
		if step.Synthetic {
			marker = "=>"
		}
		fmt.Fprintf(sb, "  %2d %s %s\n", i+1, marker, step.Title)
		if w.verbose {
			fmt.Fprintf(sb, "       %s", step.Ref)
			if i > 0 {
				fmt.Fprintf(sb, "  score=%.3f", step.Score)
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
