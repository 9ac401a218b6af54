// Package render turns a backend plan response into the itinerary the
// user sees: one entry per day with its calendar date, its topic blocks,
// and a summary with the completion banner.
package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// ErrInvalidDayNumber is returned for a day_number below 1.
var ErrInvalidDayNumber = errors.New("schedule contains a day number below 1")

// missingLinkSentinel is what the backend emits for an empty spreadsheet
// cell instead of omitting colab_link.
const missingLinkSentinel = "nan"

// Itinerary is the fully rendered plan.
type Itinerary struct {
	StartDate time.Time
	Pace      domain.Pace
	Days      []DayView
	Summary   Summary
}

// DayView is one rendered day.
type DayView struct {
	Number int
	Date   time.Time
	Header string
	Topics []TopicView
}

// TopicView is one rendered topic block. ReferenceURL is empty when the
// reference control must not be shown.
type TopicView struct {
	Title        string
	Description  string
	ReferenceURL string
}

// HasReference reports whether the topic shows a reference link.
func (t TopicView) HasReference() bool { return t.ReferenceURL != "" }

// Summary holds the headline metrics.
type Summary struct {
	ScheduledDays int
	PaceLabel     string
	TotalModules  int
	Completion    Completion
}

// Completion is the two-state banner under the metrics.
type Completion struct {
	State   domain.CompletionState
	Message string
}

// ShowReference reports whether a colab_link value should produce a
// reference control.
func ShowReference(link string) bool {
	trimmed := strings.TrimSpace(link)
	return trimmed != "" && link != missingLinkSentinel
}

// WeekdayDate formats t as "Monday, January 2".
func WeekdayDate(t time.Time) string {
	return t.Format("Monday, January 2")
}

// DayHeader builds "Day <n> — <weekday date> (<k> blocks)".
func DayHeader(n int, date time.Time, blocks int) string {
	return fmt.Sprintf("Day %d — %s (%d blocks)", n, WeekdayDate(date), blocks)
}

// Build renders resp against start. Days keep the order the backend sent;
// day numbers are trusted to be contiguous but must be positive.
func Build(resp contract.PlanResponse, start time.Time, pace domain.Pace) (Itinerary, error) {
	start = domain.CalendarDate(start)
	it := Itinerary{
		StartDate: start,
		Pace:      pace,
		Days:      make([]DayView, 0, len(resp.Schedule)),
	}

	for _, d := range resp.Schedule {
		if d.DayNumber < 1 {
			return Itinerary{}, fmt.Errorf("%w: %d", ErrInvalidDayNumber, d.DayNumber)
		}
		date := start.AddDate(0, 0, d.DayNumber-1)
		view := DayView{
			Number: d.DayNumber,
			Date:   date,
			Header: DayHeader(d.DayNumber, date, len(d.Topics)),
			Topics: make([]TopicView, 0, len(d.Topics)),
		}
		for _, tb := range d.Topics {
			tv := TopicView{
				Title:       tb.Course + " — " + tb.Module,
				Description: tb.Topics,
			}
			if ShowReference(tb.ColabLink) {
				tv.ReferenceURL = strings.TrimSpace(tb.ColabLink)
			}
			view.Topics = append(view.Topics, tv)
		}
		it.Days = append(it.Days, view)
	}

	it.Summary = Summary{
		ScheduledDays: resp.Metrics.ScheduledDays,
		PaceLabel:     pace.Label(),
		TotalModules:  resp.Metrics.TotalModules,
		Completion:    completion(resp.Metrics),
	}
	return it, nil
}

func completion(m contract.PlanMetrics) Completion {
	if m.BufferDays >= 0 {
		finish := m.FinishDate
		if t, err := domain.ParseDate(m.FinishDate); err == nil {
			finish = t.Format("January 2, 2006")
		}
		return Completion{
			State:   domain.CompletionSuccess,
			Message: fmt.Sprintf("Finish by %s with %d buffer days", finish, m.BufferDays),
		}
	}
	return Completion{
		State:   domain.CompletionWarning,
		Message: fmt.Sprintf("Plan requires %d days, exceeding available days", m.ScheduledDays),
	}
}
