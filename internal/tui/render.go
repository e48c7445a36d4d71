package tui

import (
	"fmt"
	"strings"

	"permsweep/internal/types"
)

// EmptySectionPlaceholder is printed for a section with no records.
const EmptySectionPlaceholder = "(none)"

// RenderReport formats the three report sections and the summary line.
// Record format is "<action>: <path> -- <reason>". Styling applies only to
// section headers; record lines stay plain so the output remains greppable.
func RenderReport(report types.RunReport, styled bool) string {
	var b strings.Builder

	section := func(title string, recs []types.OutcomeRecord) {
		header := title + ":"
		if styled {
			style := styleHeader
			if title == "Failed" && len(recs) > 0 {
				style = styleFailed
			}
			header = style.Render(header)
		}
		b.WriteString(header)
		b.WriteByte('\n')
		if len(recs) == 0 {
			b.WriteString("  " + EmptySectionPlaceholder + "\n")
			return
		}
		for _, rec := range recs {
			b.WriteString(fmt.Sprintf("  %s: %s -- %s\n", rec.Action, rec.Path, rec.Reason))
		}
	}

	section("Changed", report.Changed)
	section("Kept", report.Kept)
	section("Failed", report.Failed)

	summary := report.Summary()
	b.WriteString(fmt.Sprintf("summary: modified=%d kept=%d failed=%d\n",
		summary.Modified, summary.Kept, summary.Failed))
	return b.String()
}
