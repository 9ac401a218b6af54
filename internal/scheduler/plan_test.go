package scheduler

import (
	"testing"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Metrics(t *testing.T) {
	catalog := testutil.NewCatalog(12)

	resp, err := Plan(catalog, contract.PlanRequest{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-20", // 20 days
		Pace:      domain.PaceBalanced,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, resp.Schedule, 12)
	for i, d := range resp.Schedule {
		assert.Equal(t, i+1, d.DayNumber)
	}
	assert.Equal(t, contract.PlanMetrics{
		ScheduledDays: 12,
		TotalModules:  12,
		FinishDate:    "2024-03-12",
		BufferDays:    8,
	}, resp.Metrics)
	assert.Equal(t, catalog[0].ColabLink, resp.Schedule[0].Topics[0].ColabLink)
	assert.Empty(t, resp.Schedule[2].Topics[0].ColabLink)
}

func TestPlan_FullRange(t *testing.T) {
	resp, err := Plan(testutil.NewCatalog(50), contract.PlanRequest{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-15",
		Pace:      domain.PaceIntensive,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.Metrics.ScheduledDays)
	assert.Equal(t, 50, resp.Metrics.TotalModules)
	assert.Equal(t, "2024-03-15", resp.Metrics.FinishDate)
	assert.Equal(t, 0, resp.Metrics.BufferDays)
	assert.Len(t, resp.Schedule[0].Topics, 4)
	assert.Len(t, resp.Schedule[14].Topics, 3)
}

func TestPlan_SkipsCompleted(t *testing.T) {
	catalog := testutil.NewCatalog(3)

	resp, err := Plan(catalog, contract.PlanRequest{
		StartDate:        "2024-03-01",
		EndDate:          "2024-03-31",
		Pace:             domain.PaceRelaxed,
		CompletedModules: []string{catalog[0].ID()},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Metrics.TotalModules)
	assert.Equal(t, catalog[1].Module, resp.Schedule[0].Topics[0].Module)
}

func TestPlan_Errors(t *testing.T) {
	catalog := testutil.NewCatalog(3)

	tests := []struct {
		name string
		req  contract.PlanRequest
		want error
	}{
		{"too short", contract.PlanRequest{StartDate: "2024-03-01", EndDate: "2024-03-14"}, ErrRangeTooShort},
		{"bad date", contract.PlanRequest{StartDate: "03/01/2024", EndDate: "2024-03-30"}, ErrInvalidDates},
		{"end before start", contract.PlanRequest{StartDate: "2024-03-30", EndDate: "2024-03-01"}, ErrInvalidDates},
		{"missing end", contract.PlanRequest{StartDate: "2024-03-01"}, ErrInvalidDates},
		{"all completed", contract.PlanRequest{
			StartDate:        "2024-03-01",
			EndDate:          "2024-03-30",
			CompletedModules: []string{catalog[0].ID(), catalog[1].ID(), catalog[2].ID()},
		}, ErrNothingToSchedule},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Plan(catalog, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
