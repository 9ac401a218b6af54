package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/timeline"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// studyplanHuhTheme matches huh forms to the formatter palette.
func studyplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardValues backs the generate wizard's fields.
type wizardValues struct {
	start     string
	end       string
	completed []string
	pace      string
}

func validateDate(s string) error {
	if _, err := domain.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// validateEnd rejects an end before start and a range the backend would
// refuse, using the same banner text the planner shows.
func validateEnd(start *string) func(string) error {
	return func(s string) error {
		r, err := domain.ParseDateRange(strings.TrimSpace(*start), strings.TrimSpace(s))
		if err != nil {
			if errors.Is(err, domain.ErrEndBeforeStart) {
				return err
			}
			return fmt.Errorf("use YYYY-MM-DD")
		}
		banner, _, ok := timeline.Evaluate(r)
		if ok && banner.State == domain.BannerError {
			return fmt.Errorf("%s", banner.Message)
		}
		return nil
	}
}

func selectedLabel(completed *[]string) func() string {
	return func() string {
		return fmt.Sprintf("%d selected", len(*completed))
	}
}

// wizardRangeForm collects the dates and, when the catalog is known, the
// completed modules.
func wizardRangeForm(v *wizardValues, modules []string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Start date").
			Placeholder("2025-06-01").
			Value(&v.start).
			Validate(validateDate),
		huh.NewInput().
			Title("End date").
			Placeholder("2025-06-30").
			Value(&v.end).
			Validate(validateEnd(&v.start)),
	}
	groups := []*huh.Group{huh.NewGroup(fields...)}

	if len(modules) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Completed modules").
				DescriptionFunc(selectedLabel(&v.completed), &v.completed).
				Options(huh.NewOptions(modules...)...).
				Filterable(true).
				Height(12).
				Value(&v.completed),
		))
	}
	return huh.NewForm(groups...).WithTheme(studyplanHuhTheme())
}

// paceOptions lists only the paces the resolution leaves eligible.
func paceOptions(res timeline.PaceResolution) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(res.Options))
	for _, p := range domain.AllPaces {
		if !res.Eligible(p) {
			continue
		}
		opts = append(opts, huh.NewOption(p.Label(), string(p)).Selected(p == res.Active))
	}
	return opts
}

func wizardPaceForm(v *wizardValues, snap timeline.Snapshot) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Study pace").
				Description(snap.Banner.Message).
				Options(paceOptions(snap.Pace)...).
				Value(&v.pace),
		),
	).WithTheme(studyplanHuhTheme()).WithShowHelp(false)
}

// runWizard fills f interactively and returns a tracker over the answers.
// The module list is optional: when the backend can't list it the wizard
// carries on with whatever --completed flags were given.
func runWizard(ctx context.Context, app *App, f *planFlags, errOut io.Writer) (*timeline.Tracker, domain.Pace, error) {
	modules, err := app.Plans(nil).Modules(ctx)
	if err != nil {
		fmt.Fprintln(errOut, formatter.StyleYellow.Render("Module list unavailable: "+formatter.Notice(err)))
	}

	v := wizardValues{start: f.start, end: f.end, completed: append([]string(nil), f.completed...)}
	if err := wizardRangeForm(&v, modules).RunWithContext(ctx); err != nil {
		return nil, "", err
	}
	f.start, f.end, f.completed = strings.TrimSpace(v.start), strings.TrimSpace(v.end), v.completed

	tr, requested, err := f.tracker()
	if err != nil {
		return nil, "", err
	}
	snap := tr.Snapshot()
	v.pace = string(snap.Active)
	if err := wizardPaceForm(&v, snap).RunWithContext(ctx); err != nil {
		tr.Close()
		return nil, "", err
	}
	if err := tr.SelectPace(domain.Pace(v.pace)); err != nil {
		tr.Close()
		return nil, "", err
	}
	return tr, requested, nil
}
