// Package teatest drives a bubbletea model synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes every returned Cmd in turn, feeding its message back in. Cmds
// that wait on timers (cursor blink, spinner ticks) are abandoned after a
// short timeout so a test never hangs on them.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many Cmd generations one Send may produce.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates instant Cmds from timer Cmds. Blink and
// spinner timers fire after 100ms or more.
const DefaultCmdTimeout = 50 * time.Millisecond

// Driver feeds messages to a tea.Model and drains the resulting Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool

	// Seen records the type of every message delivered to the model
	// after construction, in order.
	Seen []string

	timeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout changes how long a Cmd may run before it is skipped.
// Raise it when Cmds make real network calls, e.g. to an httptest server.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// New wraps model. Options apply in order; call DrainInit next to run the
// model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains the Cmds it produces. Messages sent after
// the model quit are dropped.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// Key sends a key by its bubbletea name, e.g. "tab", "ctrl+g", "enter".
func (d *Driver) Key(name string) {
	d.T.Helper()
	msg, ok := keyMsgs[name]
	if !ok {
		d.T.Fatalf("teatest: unknown key %q", name)
	}
	d.Send(msg)
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Backspace deletes n characters from the focused input.
func (d *Driver) Backspace(n int) {
	d.T.Helper()
	for range n {
		d.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// Contains reports whether the rendered view contains s.
func (d *Driver) Contains(s string) bool {
	return strings.Contains(d.View(), s)
}

var keyMsgs = map[string]tea.KeyMsg{
	"enter":     {Type: tea.KeyEnter},
	"esc":       {Type: tea.KeyEsc},
	"tab":       {Type: tea.KeyTab},
	"shift+tab": {Type: tea.KeyShiftTab},
	"space":     {Type: tea.KeySpace, Runes: []rune{' '}},
	"up":        {Type: tea.KeyUp},
	"down":      {Type: tea.KeyDown},
	"left":      {Type: tea.KeyLeft},
	"right":     {Type: tea.KeyRight},
	"pgup":      {Type: tea.KeyPgUp},
	"pgdown":    {Type: tea.KeyPgDown},
	"ctrl+c":    {Type: tea.KeyCtrlC},
	"ctrl+d":    {Type: tea.KeyCtrlD},
	"ctrl+g":    {Type: tea.KeyCtrlG},
	"ctrl+s":    {Type: tea.KeyCtrlS},
	"ctrl+u":    {Type: tea.KeyCtrlU},
}

func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.T.Helper()
	d.Seen = append(d.Seen, fmt.Sprintf("%T", msg))
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, depth+1)
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := d.run(cmd)
	if !ok || msg == nil || isTimerMsg(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Seen = append(d.Seen, fmt.Sprintf("%T", msg))
		updated, _ := d.Model.Update(msg)
		d.Model = updated
	default:
		d.deliver(msg, depth)
	}
}

// run executes cmd, giving up after the driver's timeout.
func (d *Driver) run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(d.timeout):
		return nil, false
	}
}

// isTimerMsg matches messages whose follow-up Cmd would wait on a timer.
// The cursor package keeps its blink types unexported, so they are
// matched by name.
func isTimerMsg(msg tea.Msg) bool {
	if _, ok := msg.(spinner.TickMsg); ok {
		return true
	}
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink")
}
