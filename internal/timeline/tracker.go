package timeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// ErrPaceIneligible is returned when selecting a pace the current day
// count rules out.
var ErrPaceIneligible = errors.New("pace is not available for the selected dates")

// Snapshot is everything the planner surface shows for the current input.
type Snapshot struct {
	Range domain.DateRange
	// Ready is false until both dates are chosen. Banner and Pace are
	// only meaningful when Ready.
	Ready          bool
	Days           int
	Banner         Banner
	Pace           PaceResolution
	Active         domain.Pace
	CompletedCount int
}

// SelectedLabel is the "N selected" caption for the module picker.
func (s Snapshot) SelectedLabel() string {
	return fmt.Sprintf("%d selected", s.CompletedCount)
}

// Tracker recomputes the banner and pace resolution whenever the date
// range or the completed-module set changes, and forwards the result to
// its subscribers. All work is synchronous in the caller's goroutine.
type Tracker struct {
	dates   *domain.DateRangeModel
	modules *domain.CompletedModuleSet

	mu        sync.Mutex
	active    domain.Pace
	last      Snapshot
	listeners []func(Snapshot)
	unsubs    []func()
}

// NewTracker wires a Tracker to the given models. The initial active pace
// is balanced.
func NewTracker(dates *domain.DateRangeModel, modules *domain.CompletedModuleSet) *Tracker {
	if modules == nil {
		modules = domain.NewCompletedModuleSet()
	}
	t := &Tracker{
		dates:   dates,
		modules: modules,
		active:  domain.PaceBalanced,
	}
	t.unsubs = []func(){
		dates.Subscribe(func(domain.DateRange) { t.Refresh() }),
		modules.Subscribe(func(int) { t.Refresh() }),
	}
	t.Refresh()
	return t
}

// Close detaches the tracker from both models. It is safe to call twice.
func (t *Tracker) Close() {
	for _, unsub := range t.unsubs {
		unsub()
	}
}

// Dates returns the underlying date model.
func (t *Tracker) Dates() *domain.DateRangeModel { return t.dates }

// Modules returns the underlying completed-module set.
func (t *Tracker) Modules() *domain.CompletedModuleSet { return t.modules }

// Subscribe registers fn for every future snapshot.
func (t *Tracker) Subscribe(fn func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Snapshot returns the most recent computation.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Active returns the selected pace.
func (t *Tracker) Active() domain.Pace {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SelectPace changes the active pace. Once both dates are set, a pace the
// rules disable is refused and the selection is left unchanged.
func (t *Tracker) SelectPace(p domain.Pace) error {
	if !p.Valid() {
		return fmt.Errorf("unknown pace %q", p)
	}
	t.mu.Lock()
	if t.last.Ready && !t.last.Pace.Eligible(p) {
		reason := t.last.Pace.Option(p).Reason
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPaceIneligible, reason)
	}
	t.active = p
	t.mu.Unlock()
	t.Refresh()
	return nil
}

// Refresh recomputes the snapshot from the current models.
func (t *Tracker) Refresh() {
	r := t.dates.Range()
	count := t.modules.Len()

	t.mu.Lock()
	snap := Snapshot{Range: r, CompletedCount: count}
	if banner, days, ok := Evaluate(r); ok {
		res := ResolvePace(days, t.active)
		t.active = res.Active
		snap.Ready = true
		snap.Days = days
		snap.Banner = banner
		snap.Pace = res
	}
	snap.Active = t.active
	t.last = snap
	fns := append([]func(Snapshot){}, t.listeners...)
	t.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
