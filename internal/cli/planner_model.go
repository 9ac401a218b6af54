package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type plannerFocus int

const (
	focusStart plannerFocus = iota
	focusEnd
	focusPace
	focusFilter
	focusModules
	focusCount
)

// moduleRows is how many module rows are visible at once.
const moduleRows = 8

type modulesLoadedMsg struct {
	ids []string
	err error
}

type generateDoneMsg struct {
	itinerary *render.Itinerary
	err       error
}

type downloadDoneMsg struct {
	path string
	err  error
	// empty is set when there was no plan to download.
	empty bool
}

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeFailure
)

// plannerModel is the interactive planner: date inputs, pace options,
// module checklist and the rendered plan.
type plannerModel struct {
	ctx     context.Context
	app     *App
	plans   service.PlanService
	tracker *timeline.Tracker
	keys    plannerKeys

	start  textinput.Model
	end    textinput.Model
	filter textinput.Model
	spin   spinner.Model
	plan   viewport.Model

	focus        plannerFocus
	paceCursor   int
	modules      []string
	moduleCursor int

	busy       string
	notice     string
	noticeKind noticeKind
	hasPlan    bool

	width  int
	height int
}

func newPlannerModel(ctx context.Context, app *App) plannerModel {
	start := textinput.New()
	start.Prompt = ""
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = len(domain.DateLayout)
	start.Width = len(domain.DateLayout) + 1
	start.Focus()

	end := textinput.New()
	end.Prompt = ""
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = len(domain.DateLayout)
	end.Width = len(domain.DateLayout) + 1

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter modules"
	filter.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	vp := viewport.New(0, 0)
	vp.KeyMap = planViewportKeyMap()

	tr := timeline.NewTracker(domain.NewDateRangeModel(), domain.NewCompletedModuleSet())

	return plannerModel{
		ctx:     ctx,
		app:     app,
		plans:   app.Plans(nil),
		tracker: tr,
		keys:    newPlannerKeys(),
		start:   start,
		end:     end,
		filter:  filter,
		spin:    sp,
		plan:    vp,
	}
}

func (m plannerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadModules())
}

func (m plannerModel) loadModules() tea.Cmd {
	plans, ctx := m.plans, m.ctx
	return func() tea.Msg {
		ids, err := plans.Modules(ctx)
		return modulesLoadedMsg{ids: ids, err: err}
	}
}

func (m plannerModel) generate() tea.Cmd {
	snap := m.tracker.Snapshot()
	in := service.GenerateInput{
		Range:     snap.Range,
		Pace:      snap.Active,
		Completed: m.tracker.Modules().IDs(),
	}
	plans, ctx := m.plans, m.ctx
	return func() tea.Msg {
		it, err := plans.Generate(ctx, in)
		return generateDoneMsg{itinerary: it, err: err}
	}
}

func (m plannerModel) download() tea.Cmd {
	plans, ctx, dir := m.plans, m.ctx, m.app.ExportDir
	return func() tea.Msg {
		art, err := plans.Download(ctx)
		if err != nil {
			return downloadDoneMsg{err: err}
		}
		if art == nil {
			return downloadDoneMsg{empty: true}
		}
		path, err := art.Save(dir)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (m plannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.plan.Width = msg.Width
		m.plan.Height = max(msg.Height-headerHeight, 3)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case modulesLoadedMsg:
		if msg.err != nil {
			m.setNotice(noticeFailure, "Module list unavailable: "+formatter.Notice(msg.err))
			return m, nil
		}
		m.modules = msg.ids
		return m, nil

	case generateDoneMsg:
		m.busy = ""
		if msg.err != nil {
			m.setNotice(noticeFailure, formatter.Notice(msg.err))
			return m, nil
		}
		if msg.itinerary != nil {
			m.hasPlan = true
			m.plan.SetContent(formatter.FormatItinerary(*msg.itinerary))
			m.plan.GotoTop()
			m.setNotice(noticeSuccess, fmt.Sprintf("Plan ready: %d days", len(msg.itinerary.Days)))
		}
		return m, nil

	case downloadDoneMsg:
		m.busy = ""
		switch {
		case msg.err != nil:
			m.setNotice(noticeFailure, formatter.Notice(msg.err))
		case msg.empty:
			m.setNotice(noticeInfo, "Nothing to download yet")
		default:
			m.setNotice(noticeSuccess, "Saved "+msg.path)
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m plannerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tracker.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Generate):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Generating plan..."
		m.notice = ""
		return m, tea.Batch(m.spin.Tick, m.generate())
	case key.Matches(msg, m.keys.Download):
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Downloading..."
		m.notice = ""
		return m, tea.Batch(m.spin.Tick, m.download())
	}

	if m.hasPlan {
		switch msg.Type {
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyCtrlU, tea.KeyCtrlD:
			var cmd tea.Cmd
			m.plan, cmd = m.plan.Update(msg)
			return m, cmd
		}
	}

	switch m.focus {
	case focusPace:
		return m.handlePaceKey(msg)
	case focusModules:
		return m.handleModuleKey(msg)
	}
	return m.updateFocused(msg)
}

func (m plannerModel) setFocus(f plannerFocus) (tea.Model, tea.Cmd) {
	m.start.Blur()
	m.end.Blur()
	m.filter.Blur()
	m.focus = f

	var cmd tea.Cmd
	switch f {
	case focusStart:
		cmd = m.start.Focus()
	case focusEnd:
		cmd = m.end.Focus()
	case focusFilter:
		cmd = m.filter.Focus()
	case focusPace:
		m.paceCursor = paceIndex(m.tracker.Active())
	}
	return m, cmd
}

// updateFocused forwards msg to the focused text input and syncs the
// models with whatever it now holds.
func (m plannerModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusStart:
		before := m.start.Value()
		m.start, cmd = m.start.Update(msg)
		if m.start.Value() != before {
			m.syncStart()
		}
	case focusEnd:
		before := m.end.Value()
		m.end, cmd = m.end.Update(msg)
		if m.end.Value() != before {
			m.syncEnd()
		}
	case focusFilter:
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.moduleCursor = 0
		}
	}
	return m, cmd
}

// syncStart pushes the start input into the date model. A partial or
// invalid date leaves the start unset.
func (m *plannerModel) syncStart() {
	dates := m.tracker.Dates()
	t, err := domain.ParseDate(strings.TrimSpace(m.start.Value()))
	if err != nil {
		dates.ClearStart()
		m.end.Placeholder = "YYYY-MM-DD"
		return
	}

	hadEnd := dates.Range().End != nil
	dates.SetStart(t)
	if minEnd := dates.MinEnd(); minEnd != nil {
		m.end.Placeholder = domain.FormatDate(*minEnd)
	}
	switch {
	case hadEnd && dates.Range().End == nil:
		m.end.SetValue("")
		m.setNotice(noticeInfo, "End date cleared: it was before the new start date")
	case !hadEnd:
		// An end rejected against the old start may fit the new one.
		if end, err := domain.ParseDate(strings.TrimSpace(m.end.Value())); err == nil && dates.SetEnd(end) == nil {
			m.notice = ""
		}
	}
}

func (m *plannerModel) syncEnd() {
	dates := m.tracker.Dates()
	t, err := domain.ParseDate(strings.TrimSpace(m.end.Value()))
	if err != nil {
		dates.ClearEnd()
		return
	}
	if err := dates.SetEnd(t); err != nil {
		dates.ClearEnd()
		m.setNotice(noticeFailure, formatter.Notice(err))
		return
	}
	if m.noticeKind == noticeFailure {
		m.notice = ""
	}
}

func (m plannerModel) handlePaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.paceCursor = (m.paceCursor + len(domain.AllPaces) - 1) % len(domain.AllPaces)
	case key.Matches(msg, m.keys.Right):
		m.paceCursor = (m.paceCursor + 1) % len(domain.AllPaces)
	case key.Matches(msg, m.keys.Select):
		p := domain.AllPaces[m.paceCursor]
		if err := m.tracker.SelectPace(p); err != nil {
			reason := m.tracker.Snapshot().Pace.Option(p).Reason
			if reason == "" || !errors.Is(err, timeline.ErrPaceIneligible) {
				reason = formatter.Notice(err)
			}
			m.setNotice(noticeFailure, reason)
			return m, nil
		}
		m.notice = ""
	}
	return m, nil
}

func (m plannerModel) handleModuleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := filterModules(m.modules, m.filter.Value())
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.moduleCursor > 0 {
			m.moduleCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.moduleCursor < len(visible)-1 {
			m.moduleCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.moduleCursor < len(visible) {
			m.tracker.Modules().Toggle(visible[m.moduleCursor])
		}
	}
	return m, nil
}

func (m *plannerModel) setNotice(kind noticeKind, text string) {
	m.noticeKind = kind
	m.notice = text
}

func paceIndex(p domain.Pace) int {
	for i, q := range domain.AllPaces {
		if q == p {
			return i
		}
	}
	return 0
}

// ── view ─────────────────────────────────────────────────────────────────────

// headerHeight is the number of lines above the plan viewport.
const headerHeight = 14 + moduleRows

func (m plannerModel) View() string {
	var b strings.Builder
	snap := m.tracker.Snapshot()

	b.WriteString(formatter.Header("Study Planner"))
	b.WriteString("\n")
	b.WriteString(m.label(focusStart, "Start ") + m.start.View() + "   " + m.label(focusEnd, "End ") + m.end.View())
	b.WriteString("\n\n")

	if snap.Ready {
		b.WriteString(formatter.FormatBanner(snap.Banner))
	} else {
		b.WriteString(formatter.FormatSnapshot(snap))
	}
	b.WriteString("\n")
	b.WriteString(m.label(focusPace, "Pace ") + m.paceRow(snap))
	b.WriteString("\n")
	if snap.Ready {
		if reasons := paceReasons(snap.Pace); reasons != "" {
			b.WriteString(reasons)
		}
	}
	b.WriteString("\n")

	b.WriteString(m.label(focusModules, "Completed modules ") + formatter.Dim("("+snap.SelectedLabel()+")"))
	b.WriteString("  " + m.filter.View())
	b.WriteString("\n")
	b.WriteString(m.moduleList())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.hasPlan {
		sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.width, 20)))
		b.WriteString(sep + "\n")
		b.WriteString(m.plan.View())
		b.WriteString("\n")
	}

	b.WriteString(m.helpLine())
	return b.String()
}

func (m plannerModel) label(f plannerFocus, text string) string {
	if m.focus == f {
		return formatter.StyleHeader.Render(text)
	}
	return formatter.Dim(text)
}

func (m plannerModel) paceRow(snap timeline.Snapshot) string {
	parts := make([]string, 0, len(domain.AllPaces))
	for i, p := range domain.AllPaces {
		mark := "( )"
		if p == snap.Active {
			mark = "(•)"
		}
		text := mark + " " + p.Label()

		style := formatter.StyleFg
		if snap.Ready && !snap.Pace.Eligible(p) {
			style = formatter.StyleDim.Strikethrough(true)
		}
		if m.focus == focusPace && i == m.paceCursor {
			style = style.Underline(true)
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, "  ")
}

func paceReasons(res timeline.PaceResolution) string {
	var b strings.Builder
	for _, o := range res.Options {
		if o.Reason != "" {
			b.WriteString("  " + formatter.Dim(o.Pace.Label()+": "+o.Reason) + "\n")
		}
	}
	return b.String()
}

func (m plannerModel) moduleList() string {
	visible := filterModules(m.modules, m.filter.Value())
	if len(visible) == 0 {
		if len(m.modules) == 0 {
			return formatter.Dim("  No modules loaded.") + "\n"
		}
		return formatter.Dim("  No modules match.") + "\n"
	}

	first := 0
	if m.moduleCursor >= moduleRows {
		first = m.moduleCursor - moduleRows + 1
	}
	last := min(first+moduleRows, len(visible))

	completed := m.tracker.Modules()
	var b strings.Builder
	for i := first; i < last; i++ {
		id := visible[i]
		cursor := "  "
		if m.focus == focusModules && i == m.moduleCursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		mark := "[ ]"
		if completed.Has(id) {
			mark = formatter.StyleGreen.Render("[x]")
		}
		b.WriteString(cursor + mark + " " + id + "\n")
	}
	if len(visible) > moduleRows {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d-%d of %d", first+1, last, len(visible))) + "\n")
	}
	return b.String()
}

func (m plannerModel) statusLine() string {
	if m.busy != "" {
		return m.spin.View() + " " + m.busy
	}
	switch m.noticeKind {
	case noticeFailure:
		return formatter.StyleRed.Render(m.notice)
	case noticeSuccess:
		return formatter.StyleGreen.Render(m.notice)
	}
	return formatter.StyleYellow.Render(m.notice)
}

func (m plannerModel) helpLine() string {
	hints := make([]string, 0, 6)
	for _, k := range m.keys.helpBindings() {
		h := k.Help()
		hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
	}
	switch m.focus {
	case focusPace:
		hints = append(hints, formatter.Dim("←/→ enter: choose pace"))
	case focusModules:
		hints = append(hints, formatter.Dim("↑/↓ space: toggle"))
	}
	if m.hasPlan {
		hints = append(hints, formatter.Dim("pgup/pgdn: scroll plan"))
	}
	return strings.Join(hints, "  ")
}
