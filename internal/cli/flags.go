package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/timeline"
	"github.com/spf13/pflag"
)

// planFlags are the range, pace and completion flags shared by check and
// generate.
type planFlags struct {
	start     string
	end       string
	pace      string
	completed []string
}

func (f *planFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	fs.StringVar(&f.pace, "pace", string(domain.PaceBalanced), "study pace: intensive, balanced or relaxed")
	fs.StringArrayVar(&f.completed, "completed", nil, `completed module as "<Course> - <Module>" (repeatable)`)
}

// tracker loads the flags into fresh models. The requested pace is
// selected before the dates are set, so the pace rules then correct it
// exactly as they would in the planner.
func (f *planFlags) tracker() (*timeline.Tracker, domain.Pace, error) {
	requested, ok := domain.ParsePace(f.pace)
	if !ok {
		return nil, "", fmt.Errorf("unknown pace %q (want intensive, balanced or relaxed)", f.pace)
	}
	r, err := domain.ParseDateRange(f.start, f.end)
	if err != nil {
		return nil, "", fmt.Errorf("invalid dates: %w", err)
	}

	dates := domain.NewDateRangeModel()
	tr := timeline.NewTracker(dates, domain.NewCompletedModuleSet(f.completed...))
	if err := tr.SelectPace(requested); err != nil {
		tr.Close()
		return nil, "", err
	}
	if r.Start != nil {
		dates.SetStart(*r.Start)
	}
	if r.End != nil {
		if err := dates.SetEnd(*r.End); err != nil {
			tr.Close()
			return nil, "", err
		}
	}
	return tr, requested, nil
}

// paceAdjusted explains an automatic pace correction, or returns "" when
// the requested pace survived.
func paceAdjusted(requested domain.Pace, snap timeline.Snapshot) string {
	if !snap.Ready || requested == snap.Active {
		return ""
	}
	reason := snap.Pace.Option(requested).Reason
	return formatter.StyleYellow.Render(fmt.Sprintf("Pace adjusted: %s → %s. %s",
		requested.Label(), snap.Active.Label(), reason))
}
