package console

import (
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gopak/sigma2splunk/internal/splunk"
)

// RenderSavedSearches lists saved searches sorted by name.
func RenderSavedSearches(list []splunk.SavedSearch) string {
	if len(list) == 0 {
		return text.FgHiBlack.Sprint("No saved searches.") + "\n"
	}
	ss := append([]splunk.SavedSearch{}, list...)
	sort.Slice(ss, func(i, j int) bool { return ss[i].Name < ss[j].Name })

	var b strings.Builder
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Cron", "Scheduled", "Search"})
	for _, s := range ss {
		cron := s.CronSchedule
		if cron == "" {
			cron = "-"
		}
		sched := "no"
		if s.IsScheduled {
			sched = "yes"
		}
		tw.AppendRow(table.Row{s.Name, cron, sched, s.Search})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Name: "Search", WidthMax: 60}})
	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}
