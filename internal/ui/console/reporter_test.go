package console

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gopak/sigma2splunk/internal/logging"
	"github.com/gopak/sigma2splunk/internal/manager"
	"github.com/gopak/sigma2splunk/internal/splunk"
)

func TestConsoleReporter_ImplementsReporter(t *testing.T) {
	var _ manager.Reporter = NewConsoleReporter(&bytes.Buffer{})
}

func TestRenderResults(t *testing.T) {
	res := splunk.Results{
		Fields: []string{"_bkt", "_time", "host", "user", "_raw"},
		Rows: []map[string]any{
			{"_bkt": "main~1", "_time": "2026-10-16T10:00:00", "host": "ws01", "user": []any{"alice", "bob"}, "_raw": "whoami"},
			{"_time": "2026-10-16T10:05:00", "host": "ws02", "_raw": "whoami /all"},
		},
	}
	out := RenderResults(res)
	if strings.Contains(out, "_bkt") || strings.Contains(out, "main~1") {
		t.Fatalf("internal fields should be hidden:\n%s", out)
	}
	for _, want := range []string{"_time", "HOST", "ws01", "ws02", "alice, bob", "whoami /all", "2 row(s)"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResults_Empty(t *testing.T) {
	if out := RenderResults(splunk.Results{}); !strings.Contains(out, "No results.") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderResults_FieldsFromRows(t *testing.T) {
	out := RenderResults(splunk.Results{Rows: []map[string]any{{"b": 2.0, "a": "x"}}})
	if strings.Index(strings.ToUpper(out), "A") > strings.Index(strings.ToUpper(out), " B ") {
		t.Fatalf("fields should be sorted when splunkd sends none:\n%s", out)
	}
	if !strings.Contains(out, "2") {
		t.Fatalf("numeric value missing:\n%s", out)
	}
}

func TestRenderSavedSearches(t *testing.T) {
	out := RenderSavedSearches([]splunk.SavedSearch{
		{Name: "zeta", Search: "search b", IsScheduled: false},
		{Name: "alpha", Search: "search a", CronSchedule: "*/30 * * * *", IsScheduled: true},
	})
	if strings.Index(out, "alpha") > strings.Index(out, "zeta") {
		t.Fatalf("not sorted by name:\n%s", out)
	}
	for _, want := range []string{"*/30 * * * *", "yes", "no", "search a"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if out := RenderSavedSearches(nil); !strings.Contains(out, "No saved searches.") {
		t.Fatalf("unexpected empty output: %q", out)
	}
}

func TestOnJobProgress_SkipsRepeatsButPrintsFinal(t *testing.T) {
	var out bytes.Buffer
	logging.Stdout = &out
	defer func() { logging.Stdout = os.Stdout }()

	r := NewConsoleReporter(&bytes.Buffer{})
	r.OnJobProgress(splunk.JobStatus{DoneProgress: 0.5, ScanCount: 10})
	r.OnJobProgress(splunk.JobStatus{DoneProgress: 0.5, ScanCount: 10})
	r.OnJobProgress(splunk.JobStatus{DoneProgress: 1, ScanCount: 20, EventCount: 2, ResultCount: 2, IsDone: true})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 progress lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[1] != "100.0% done | 20 scanned | 2 matched | 2 results" {
		t.Fatalf("final line = %q", lines[1])
	}
}
