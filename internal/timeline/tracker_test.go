package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestTracker_NotReadyUntilBothDatesSet(t *testing.T) {
	tr := NewTracker(domain.NewDateRangeModel(), nil)
	defer tr.Close()

	tr.Dates().SetStart(day(t, "2024-03-01"))

	snap := tr.Snapshot()
	assert.False(t, snap.Ready)
	assert.Equal(t, domain.PaceBalanced, snap.Active)
}

func TestTracker_RecomputesOnDateChange(t *testing.T) {
	dates := domain.NewDateRangeModel()
	tr := NewTracker(dates, nil)
	defer tr.Close()

	var seen []Snapshot
	tr.Subscribe(func(s Snapshot) { seen = append(seen, s) })

	dates.SetStart(day(t, "2024-03-01"))
	require.NoError(t, dates.SetEnd(day(t, "2024-03-20")))

	require.Len(t, seen, 2)
	last := seen[1]
	assert.True(t, last.Ready)
	assert.Equal(t, 20, last.Days)
	assert.Equal(t, domain.BannerNormal, last.Banner.State)
	assert.True(t, last.Pace.Eligible(domain.PaceBalanced))
	assert.False(t, last.Pace.Eligible(domain.PaceRelaxed))
}

func TestTracker_ShorteningRangeForcesIntensive(t *testing.T) {
	dates := domain.NewDateRangeModel()
	tr := NewTracker(dates, nil)
	defer tr.Close()

	dates.SetStart(day(t, "2024-03-01"))
	require.NoError(t, dates.SetEnd(day(t, "2024-03-30")))
	require.NoError(t, tr.SelectPace(domain.PaceRelaxed))
	assert.Equal(t, domain.PaceRelaxed, tr.Active())

	require.NoError(t, dates.SetEnd(day(t, "2024-03-19")))

	assert.Equal(t, domain.PaceIntensive, tr.Active())
	assert.Equal(t, domain.BannerNormal, tr.Snapshot().Banner.State)
}

func TestTracker_SelectIneligiblePaceRefused(t *testing.T) {
	dates := domain.NewDateRangeModel()
	tr := NewTracker(dates, nil)
	defer tr.Close()

	dates.SetStart(day(t, "2024-01-01"))
	require.NoError(t, dates.SetEnd(day(t, "2024-02-29")))

	err := tr.SelectPace(domain.PaceIntensive)
	assert.ErrorIs(t, err, ErrPaceIneligible)
	assert.Equal(t, domain.PaceBalanced, tr.Active())
}

func TestTracker_SelectPaceBeforeDatesIsAccepted(t *testing.T) {
	tr := NewTracker(domain.NewDateRangeModel(), nil)
	defer tr.Close()

	require.NoError(t, tr.SelectPace(domain.PaceRelaxed))
	assert.Equal(t, domain.PaceRelaxed, tr.Active())

	assert.Error(t, tr.SelectPace("sprint"))
}

func TestTracker_ModuleChangeRefreshesCount(t *testing.T) {
	modules := domain.NewCompletedModuleSet()
	tr := NewTracker(domain.NewDateRangeModel(), modules)
	defer tr.Close()

	modules.Set("Python - Basics", true)
	modules.Set("SQL - Joins", true)

	assert.Equal(t, 2, tr.Snapshot().CompletedCount)
	assert.Equal(t, "2 selected", tr.Snapshot().SelectedLabel())
}

func TestTracker_CloseStopsDateUpdates(t *testing.T) {
	dates := domain.NewDateRangeModel()
	tr := NewTracker(dates, nil)
	tr.Close()

	dates.SetStart(day(t, "2024-03-01"))
	require.NoError(t, dates.SetEnd(day(t, "2024-03-20")))

	assert.False(t, tr.Snapshot().Ready)
}

func TestTracker_CloseStopsModuleUpdates(t *testing.T) {
	modules := domain.NewCompletedModuleSet()
	tr := NewTracker(domain.NewDateRangeModel(), modules)
	var refreshes int
	tr.Subscribe(func(Snapshot) { refreshes++ })
	tr.Close()

	modules.Set("Python - Basics", true)

	assert.Zero(t, refreshes)
	assert.Zero(t, tr.Snapshot().CompletedCount)
}
