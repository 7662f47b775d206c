package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeAlert(md, summary)
	if summary.Mode == ModeRace && len(summary.Results) > 1 {
		w.writeVisitedChart(md, summary)
	}
	for _, r := range summary.Results {
		w.writeResult(md, r)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *Summary) {
	md.H1("Wikinav Report")
	md.PlainText("")

	rows := [][]string{
		{"Mode", summary.Mode},
		{"Start", summary.Start},
		{"Target", summary.Target},
		{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
		{"Generated", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.Context != "" {
		md.Note(fmt.Sprintf("Links were scored against the %s summary: %s", summary.ContextLang, summary.Context))
		md.PlainText("")
	}
}

// writeAlert writes an alert describing the outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *Summary) {
	if len(summary.Results) == 0 {
		md.Cautionf("No result was produced.")
		md.PlainText("")
		return
	}

	first := summary.Results[0]
	switch {
	case summary.Mode == ModeRace:
		md.Tip(fmt.Sprintf("%s won the race: %s.", first.Strategy, statusText(first.Path.Status)))
	case first.Path.Status.Succeeded():
		md.Tip(fmt.Sprintf("%s in %d steps.", statusText(first.Path.Status), first.Path.Len()))
	default:
		md.Warningf("Target not found: %s.", statusText(first.Path.Status))
	}
	md.PlainText("")
}

// writeVisitedChart writes a mermaid pie chart of pages visited per strategy.
func (w *MarkdownWriter) writeVisitedChart(md *markdown.Markdown, summary *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pages Visited"),
		piechart.WithShowData(true),
	)
	for _, r := range summary.Results {
		if r.Path.Visited > 0 {
			chart.LabelAndIntValue(r.Strategy, uint64(r.Path.Visited))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeResult writes one path as a table.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, r Result) {
	title := r.Strategy
	if r.Role != "" {
		title = fmt.Sprintf("%s (%s)", r.Strategy, r.Role)
	}
	md.H2(title)
	md.PlainText("")

	md.BulletList(
		"Status: "+statusText(r.Path.Status)+" (`"+string(r.Path.Status)+"`)",
		"Steps: "+strconv.Itoa(r.Path.Len()),
		"Visited: "+strconv.Itoa(r.Path.Visited),
	)
	md.PlainText("")

	if r.Path.Len() == 0 {
		md.PlainText("No path.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(r.Path.Steps))
	for i, step := range r.Path.Steps {
		score := "-"
		if i > 0 {
			score = strconv.FormatFloat(step.Score, 'f', 3, 64)
		}
		note := ""
		if step.Synthetic {
			note = "qualifying link"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("[%s](%s)", step.Title, step.Ref),
			score,
			note,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Page", "Score", "Note"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wikinav](https://github.com/nao1215/wikinav)*")
}
