package timeline

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

const (
	// MinDays is the shortest range a plan can be generated for.
	MinDays = 15
	// MaxOptimalDays is the longest range the plan is tuned for. Longer
	// ranges are allowed but flagged.
	MaxOptimalDays = 40
)

// Banner is the timeline status line shown above the pace options.
type Banner struct {
	State   domain.BannerState
	Message string
}

const secondsPerDay = 24 * 60 * 60

// DayCount returns the inclusive number of calendar days in r. ok is false
// when either endpoint is missing; callers should return early.
func DayCount(r domain.DateRange) (days int, ok bool) {
	if !r.Complete() {
		return 0, false
	}
	start := domain.CalendarDate(*r.Start)
	end := domain.CalendarDate(*r.End)
	// Whole days since the epoch; a Duration would saturate past ~292 years.
	return int(end.Unix()/secondsPerDay-start.Unix()/secondsPerDay) + 1, true
}

// Classify buckets a day count into a banner. The normal-state message
// names the span, so the range is passed along; it may be empty.
func Classify(days int, r domain.DateRange) Banner {
	switch {
	case days < MinDays:
		return Banner{
			State:   domain.BannerError,
			Message: fmt.Sprintf("Minimum %d days required. You have %d days.", MinDays, days),
		}
	case days > MaxOptimalDays:
		return Banner{
			State:   domain.BannerWarning,
			Message: fmt.Sprintf("You have %d days. Plan is optimized for %d-%d days.", days, MinDays, MaxOptimalDays),
		}
	}
	msg := fmt.Sprintf("Planning for %d days", days)
	if r.Complete() {
		msg += fmt.Sprintf(" from %s to %s", LongDate(*r.Start), LongDate(*r.End))
	}
	return Banner{State: domain.BannerNormal, Message: msg}
}

// Evaluate combines DayCount and Classify. ok is false until both dates
// are chosen.
func Evaluate(r domain.DateRange) (Banner, int, bool) {
	days, ok := DayCount(r)
	if !ok {
		return Banner{}, 0, false
	}
	return Classify(days, r), days, true
}

// LongDate formats t as "January 2, 2006".
func LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
