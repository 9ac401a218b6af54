package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/timeline"
)

// FormatBanner renders the timeline banner line.
func FormatBanner(b timeline.Banner) string {
	icon := "●"
	switch b.State {
	case domain.BannerError:
		icon = "✖"
	case domain.BannerWarning:
		icon = "▲"
	}
	return BannerStyle(b.State).Render(icon + " " + b.Message)
}

// FormatPaceOptions renders the three pace controls with the active one
// marked and disabled ones dimmed with their reason.
func FormatPaceOptions(res timeline.PaceResolution) string {
	var b strings.Builder
	for _, p := range domain.AllPaces {
		opt := res.Option(p)
		marker := "( )"
		if p == res.Active {
			marker = "(•)"
		}
		switch {
		case !opt.Eligible:
			b.WriteString(Dim(fmt.Sprintf("%s %-10s %s", marker, p.Label(), opt.Reason)))
		case p == res.Active:
			b.WriteString(StyleGreen.Render(fmt.Sprintf("%s %s", marker, p.Label())))
		default:
			b.WriteString(StyleFg.Render(fmt.Sprintf("%s %s", marker, p.Label())))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatPaceTable renders the pace resolution as a table, for the check
// command.
func FormatPaceTable(res timeline.PaceResolution) string {
	rows := make([][]string, 0, len(domain.AllPaces))
	for _, p := range domain.AllPaces {
		opt := res.Option(p)
		state := StyleGreen.Render("available")
		if !opt.Eligible {
			state = StyleRed.Render("disabled")
		}
		selected := ""
		if p == res.Active {
			selected = StyleGreen.Render("✓")
		}
		rows = append(rows, []string{p.Label(), state, selected, Dim(opt.Reason)})
	}
	return RenderTable([]string{"PACE", "STATE", "SELECTED", "NOTE"}, rows)
}

// FormatSnapshot renders the banner and pace options for a tracker
// snapshot, or a prompt while dates are missing.
func FormatSnapshot(s timeline.Snapshot) string {
	if !s.Ready {
		return Dim("Select a start and end date to begin.")
	}
	return FormatBanner(s.Banner) + "\n\n" + FormatPaceOptions(s.Pace)
}

// FormatSummary renders the headline metrics and completion banner.
func FormatSummary(sum render.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		Dim("Days:"), Bold(fmt.Sprint(sum.ScheduledDays)),
		Dim("Pace:"), Bold(sum.PaceLabel),
		Dim("Modules:"), Bold(fmt.Sprint(sum.TotalModules)),
	))
	b.WriteString(CompletionStyle(sum.Completion.State).Render(sum.Completion.Message))
	return b.String()
}

// FormatDay renders one day with its topic blocks.
func FormatDay(d render.DayView) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(d.Header))
	b.WriteString("\n")
	for _, t := range d.Topics {
		b.WriteString("  " + StyleBold.Render(t.Title) + "\n")
		if t.Description != "" {
			b.WriteString("    " + StyleFg.Render(t.Description) + "\n")
		}
		if t.HasReference() {
			b.WriteString("    " + StyleBlue.Render("↗ "+t.ReferenceURL) + "\n")
		}
	}
	return b.String()
}

// FormatItinerary renders the full plan: summary first, then each day.
func FormatItinerary(it render.Itinerary) string {
	var b strings.Builder
	b.WriteString(Header("Study Plan"))
	b.WriteString("\n")
	b.WriteString(FormatSummary(it.Summary))
	b.WriteString("\n\n")
	for i, d := range it.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatDay(d))
	}
	return b.String()
}

// FormatModules renders the catalog listing, marking completed modules.
func FormatModules(ids []string, completed *domain.CompletedModuleSet) string {
	if len(ids) == 0 {
		return Dim("No modules in the catalog.") + "\n"
	}
	var b strings.Builder
	for _, id := range ids {
		mark := "[ ]"
		if completed != nil && completed.Has(id) {
			mark = StyleGreen.Render("[x]")
		}
		b.WriteString(mark + " " + id + "\n")
	}
	if completed != nil {
		b.WriteString(Dim(fmt.Sprintf("%d selected", completed.Len())) + "\n")
	}
	return b.String()
}
