package download

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/odpf/dotnet-fetch/internal/fetcher"
)

var statusColors = map[fetcher.Status]*color.Color{
	fetcher.StatusDownloaded: color.New(color.FgHiGreen),
	fetcher.StatusSkipped:    color.New(color.FgCyan),
	fetcher.StatusPlanned:    color.New(color.FgYellow),
	fetcher.StatusFailed:     color.New(color.Bold, color.FgHiRed),
}

func printSummary(w io.Writer, summary *fetcher.Summary) {
	if summary == nil || len(summary.Results) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"Target",
		"Version",
		"Status",
		"Detail",
	})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, result := range summary.Results {
		detail := result.Path
		if result.Err != nil {
			detail = result.Err.Error()
		}
		table.Append([]string{
			result.Target(),
			result.Version,
			colorStatus(result.Status),
			detail,
		})
	}
	table.Render()
}

func colorStatus(status fetcher.Status) string {
	c, ok := statusColors[status]
	if !ok {
		return string(status)
	}
	return c.Sprint(string(status))
}
