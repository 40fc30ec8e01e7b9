package console

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gopak/sigma2splunk/internal/logging"
	"github.com/gopak/sigma2splunk/internal/manager"
	"github.com/gopak/sigma2splunk/internal/splunk"
)

type consoleReporter struct {
	mu       sync.Mutex
	out      io.Writer
	last     time.Time
	lastLine string
	throttle time.Duration
}

func NewConsoleReporter(out io.Writer) manager.Reporter {
	return &consoleReporter{out: out, throttle: 500 * time.Millisecond}
}

func (r *consoleReporter) OnQuery(q string) {
	logging.Info("Generated Splunk query: " + q)
}

func (r *consoleReporter) OnJobProgress(st splunk.JobStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line := progressLine(st)
	final := st.IsDone || st.IsFailed
	if line == r.lastLine {
		return
	}
	if !final && time.Since(r.last) < r.throttle {
		return
	}
	r.last = time.Now()
	r.lastLine = line
	logging.Info(line)
}

func (r *consoleReporter) OnResults(res splunk.Results) {
	_, _ = fmt.Fprint(r.out, RenderResults(res))
}

func progressLine(st splunk.JobStatus) string {
	return fmt.Sprintf("%.1f%% done | %d scanned | %d matched | %d results",
		st.DoneProgress*100, st.ScanCount, st.EventCount, st.ResultCount)
}

// RenderResults draws result rows as a table. Splunk's internal fields
// (leading underscore) are hidden except _time and _raw.
func RenderResults(res splunk.Results) string {
	if len(res.Rows) == 0 {
		return text.FgHiBlack.Sprint("No results.") + "\n"
	}
	fields := visibleFields(res)
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	header := make(table.Row, 0, len(fields))
	for _, f := range fields {
		header = append(header, f)
	}
	tw.AppendHeader(header)
	for _, row := range res.Rows {
		tr := make(table.Row, 0, len(fields))
		for _, f := range fields {
			tr = append(tr, formatValue(row[f]))
		}
		tw.AppendRow(tr)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Name: "_raw", WidthMax: 100}})
	return tw.Render() + "\n" + fmt.Sprintf("%d row(s)\n", len(res.Rows))
}

func visibleFields(res splunk.Results) []string {
	fields := res.Fields
	if len(fields) == 0 {
		seen := map[string]struct{}{}
		for _, row := range res.Rows {
			for k := range row {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					fields = append(fields, k)
				}
			}
		}
		sort.Strings(fields)
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "_") && f != "_time" && f != "_raw" {
			continue
		}
		out = append(out, f)
	}
	return out
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, formatValue(p))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
