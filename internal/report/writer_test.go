package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/wikinav/internal/model"
	"github.com/nao1215/wikinav/internal/race"
)

const (
	testStart  = "https://en.wikipedia.org/wiki/Cat"
	testTarget = "Paris"
)

func step(title string, score float64, synthetic bool) model.Step {
	return model.Step{
		Title:     title,
		Ref:       model.MustParsePageRef("https://en.wikipedia.org/wiki/" + title),
		Score:     score,
		Synthetic: synthetic,
	}
}

// createTestSummary creates a walk summary with sample data for testing.
func createTestSummary() *Summary {
	path := model.Path{
		Steps: []model.Step{
			step("Cat", 0, false),
			step("France", 0.72, false),
			step("Paris", 0.91, true),
		},
		Status:  model.StatusMatched,
		Visited: 2,
	}
	return NewPathSummary(ModeWalk, "Title-Based", testStart, testTarget, path, 1500*time.Millisecond)
}

// createRaceSummary creates a race summary with a winner and a runner-up.
func createRaceSummary() *Summary {
	winner := model.RaceResult{
		Strategy: "Context-Based",
		Path: model.Path{
			Steps:   []model.Step{step("Cat", 0, false), step("Paris", 0.95, false)},
			Status:  model.StatusReached,
			Visited: 2,
		},
	}
	runnerUp := model.RaceResult{
		Strategy: "Title-Based",
		Path: model.Path{
			Steps:   []model.Step{step("Cat", 0, false), step("Pet", 0.4, false), step("Dog", 0.3, false)},
			Status:  model.StatusCancelled,
			Visited: 3,
		},
	}
	out := &race.Outcome{
		Winner:   winner,
		RunnerUp: &runnerUp,
		Recorded: []model.RaceResult{winner},
		Elapsed:  2 * time.Second,
	}
	return NewRaceSummary(testStart, testTarget, out).
		WithContext("paris capital largest city france", "simple")
}

// errorWriter always fails.
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestNewRaceSummary(t *testing.T) {
	t.Parallel()

	t.Run("winner first then runner-up", func(t *testing.T) {
		t.Parallel()

		s := createRaceSummary()
		if s.Mode != ModeRace {
			t.Errorf("Mode = %q, want %q", s.Mode, ModeRace)
		}
		if len(s.Results) != 2 {
			t.Fatalf("got %d results, want 2", len(s.Results))
		}
		if s.Results[0].Role != RoleWinner || s.Results[0].Strategy != "Context-Based" {
			t.Errorf("first result = %+v", s.Results[0])
		}
		if s.Results[1].Role != RoleRunnerUp || s.Results[1].Strategy != "Title-Based" {
			t.Errorf("second result = %+v", s.Results[1])
		}
		if s.Elapsed != 2*time.Second {
			t.Errorf("Elapsed = %v", s.Elapsed)
		}
		if !s.Succeeded() {
			t.Error("expected race summary to succeed")
		}
	})

	t.Run("nil outcome has no results", func(t *testing.T) {
		t.Parallel()

		s := NewRaceSummary(testStart, testTarget, nil)
		if len(s.Results) != 0 {
			t.Errorf("got %d results, want 0", len(s.Results))
		}
		if s.Succeeded() {
			t.Error("empty summary must not succeed")
		}
	})

	t.Run("no runner-up", func(t *testing.T) {
		t.Parallel()

		out := &race.Outcome{Winner: model.RaceResult{Strategy: "A", Path: model.Path{Status: model.StatusExhausted}}}
		s := NewRaceSummary(testStart, testTarget, out)
		if len(s.Results) != 1 {
			t.Fatalf("got %d results, want 1", len(s.Results))
		}
		if s.Succeeded() {
			t.Error("exhausted winner must not count as success")
		}
	})
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"WIKINAV WALK",
			testStart,
			"Target:  Paris",
			"Title-Based",
			"Found a link to the target (matched)",
			"Steps:   3",
			"-> Cat",
			"=> Paris",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
		if strings.Contains(output, "score=") {
			t.Error("scores must only appear in verbose mode")
		}
	})

	t.Run("verbose shows urls and scores", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "https://en.wikipedia.org/wiki/France") {
			t.Error("expected step URL in verbose output")
		}
		if !strings.Contains(output, "score=0.720") {
			t.Error("expected step score in verbose output")
		}
	})

	t.Run("race shows roles and context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createRaceSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"WIKINAV RACE",
			"Context-Based (winner)",
			"Title-Based (runner-up)",
			"Context: paris capital largest city france (simple)",
			"Stopped early (cancelled)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s := NewPathSummary(ModeDFS, "Depth-First", testStart, testTarget, model.Path{Status: model.StatusDeadEnd, Visited: 9}, 0)
		if _, err := NewSimpleWriter(&buf).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "(no path)") {
			t.Error("expected empty path marker")
		}
		if !strings.Contains(output, "Visited: 9") {
			t.Error("expected visited count")
		}
	})

	t.Run("propagates write errors", func(t *testing.T) {
		t.Parallel()

		if _, err := NewSimpleWriter(errorWriter{}).Write(createTestSummary()); err == nil {
			t.Error("expected error from failing output")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithVersion("v1.2.3")).Write(createRaceSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Version   string `json:"version"`
			Succeeded bool   `json:"succeeded"`
			Mode      string `json:"mode"`
			Context   string `json:"context"`
			Results   []struct {
				Strategy string `json:"strategy"`
				Role     string `json:"role"`
				Path     struct {
					Status string `json:"status"`
					Steps  []struct {
						Title string `json:"title"`
						URL   string `json:"url"`
					} `json:"steps"`
				} `json:"path"`
			} `json:"results"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}

		if got.Version != "v1.2.3" {
			t.Errorf("version = %q", got.Version)
		}
		if !got.Succeeded {
			t.Error("expected succeeded = true")
		}
		if got.Mode != ModeRace {
			t.Errorf("mode = %q", got.Mode)
		}
		if len(got.Results) != 2 {
			t.Fatalf("got %d results, want 2", len(got.Results))
		}
		if got.Results[0].Path.Status != "reached" {
			t.Errorf("winner status = %q", got.Results[0].Path.Status)
		}
		if got.Results[0].Path.Steps[1].URL != "https://en.wikipedia.org/wiki/Paris" {
			t.Errorf("step url = %q", got.Results[0].Path.Steps[1].URL)
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected a single line of compact JSON")
		}
		if strings.Contains(buf.String(), `"version"`) {
			t.Error("version must be omitted when unset")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"mode\"") {
			t.Errorf("expected two-space indentation, got:\n%s", buf.String())
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent("", "\t")).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n\t\"mode\"") {
			t.Error("expected tab indentation")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("walk report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownWriter(&buf).Write(createTestSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero length")
		}

		output := buf.String()
		for _, want := range []string{
			"# Wikinav Report",
			"Property",
			"## Title-Based",
			"[France](https://en.wikipedia.org/wiki/France)",
			"0.720",
			"qualifying link",
			"[!TIP]",
			"wikinav",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
		if strings.Contains(output, "mermaid") {
			t.Error("single-path report must not include a chart")
		}
	})

	t.Run("race report has chart and context note", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createRaceSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"```mermaid",
			"Pages Visited",
			"## Context-Based (winner)",
			"## Title-Based (runner-up)",
			"[!NOTE]",
			"won the race",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("failed walk warns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		path := model.Path{Steps: []model.Step{step("Cat", 0, false)}, Status: model.StatusLoop, Visited: 1}
		s := NewPathSummary(ModeWalk, "Title-Based", testStart, testTarget, path, 0)
		if _, err := NewMarkdownWriter(&buf).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected warning alert")
		}
	})

	t.Run("empty summary cautions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(NewRaceSummary(testStart, testTarget, nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected caution alert")
		}
	})
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("total = %d, want %d", n, text.Len()+js.Len())
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(errorWriter{}), NewSimpleWriter(&after))

		if _, err := mw.Write(createTestSummary()); err == nil {
			t.Error("expected error")
		}
		if after.Len() != 0 {
			t.Error("writers after a failure must not run")
		}
	})
}
