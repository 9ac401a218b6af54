package domain

import (
	"errors"
	"sync"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrEndBeforeStart is returned when an end date earlier than the current
// start is selected.
var ErrEndBeforeStart = errors.New("end date cannot be before start date")

// CalendarDate strips the time-of-day and location from t, keeping the
// calendar day the caller observed. The result is midnight UTC so that
// day arithmetic is never shifted by daylight-saving transitions.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(t), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange is a pair of optional calendar dates.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both endpoints are set.
func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}

// StartString returns the start as YYYY-MM-DD, or "" when unset.
func (r DateRange) StartString() string {
	if r.Start == nil {
		return ""
	}
	return FormatDate(*r.Start)
}

// EndString returns the end as YYYY-MM-DD, or "" when unset.
func (r DateRange) EndString() string {
	if r.End == nil {
		return ""
	}
	return FormatDate(*r.End)
}

// ParseDateRange builds a DateRange from two YYYY-MM-DD strings. Blank
// strings leave the endpoint unset.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := ParseDate(start)
		if err != nil {
			return DateRange{}, err
		}
		r.Start = &t
	}
	if end != "" {
		t, err := ParseDate(end)
		if err != nil {
			return DateRange{}, err
		}
		if r.Start != nil && t.Before(*r.Start) {
			return DateRange{}, ErrEndBeforeStart
		}
		r.End = &t
	}
	return r, nil
}

// DateRangeModel holds the dates chosen in the two pickers and notifies
// subscribers on every change. It has no validation logic beyond keeping
// End >= Start.
type DateRangeModel struct {
	mu        sync.Mutex
	start     *time.Time
	end       *time.Time
	nextID    int
	listeners map[int]func(DateRange)
	order     []int
}

// NewDateRangeModel returns an empty model.
func NewDateRangeModel() *DateRangeModel {
	return &DateRangeModel{listeners: make(map[int]func(DateRange))}
}

// Range returns a copy of the current selection.
func (m *DateRangeModel) Range() DateRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// MinEnd is the earliest end date the end picker accepts: the current
// start, or nil when no start is set.
func (m *DateRangeModel) MinEnd() *time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.start == nil {
		return nil
	}
	t := *m.start
	return &t
}

// SetStart changes the start date. An existing end that now precedes the
// start is cleared, since the end picker's minimum bound moves with start.
func (m *DateRangeModel) SetStart(t time.Time) {
	d := CalendarDate(t)
	m.mu.Lock()
	m.start = &d
	if m.end != nil && m.end.Before(d) {
		m.end = nil
	}
	m.mu.Unlock()
	m.notify()
}

// SetEnd changes the end date. It fails without notifying when t is
// earlier than the current start.
func (m *DateRangeModel) SetEnd(t time.Time) error {
	d := CalendarDate(t)
	m.mu.Lock()
	if m.start != nil && d.Before(*m.start) {
		m.mu.Unlock()
		return ErrEndBeforeStart
	}
	m.end = &d
	m.mu.Unlock()
	m.notify()
	return nil
}

// ClearStart unsets the start date.
func (m *DateRangeModel) ClearStart() {
	m.mu.Lock()
	m.start = nil
	m.mu.Unlock()
	m.notify()
}

// ClearEnd unsets the end date.
func (m *DateRangeModel) ClearEnd() {
	m.mu.Lock()
	m.end = nil
	m.mu.Unlock()
	m.notify()
}

// Subscribe registers fn to be called with the new range after every
// mutation. The returned func removes the subscription.
func (m *DateRangeModel) Subscribe(fn func(DateRange)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.order = append(m.order, id)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
		for i, v := range m.order {
			if v == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}

func (m *DateRangeModel) snapshotLocked() DateRange {
	var r DateRange
	if m.start != nil {
		s := *m.start
		r.Start = &s
	}
	if m.end != nil {
		e := *m.end
		r.End = &e
	}
	return r
}

// notify runs listeners outside the lock, in subscription order.
func (m *DateRangeModel) notify() {
	m.mu.Lock()
	r := m.snapshotLocked()
	fns := make([]func(DateRange), 0, len(m.order))
	for _, id := range m.order {
		fns = append(fns, m.listeners[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(r)
	}
}
