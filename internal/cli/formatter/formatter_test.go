package formatter

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planclient"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/alexanderramin/studyplan/internal/timeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("long value"), "x"},
		{"s", "y"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatPaceOptions_ShowsReasons(t *testing.T) {
	res := timeline.ResolvePace(18, domain.PaceRelaxed)

	out := FormatPaceOptions(res)

	assert.Contains(t, out, "(•) Intensive")
	assert.Contains(t, out, "Not enough days for balanced pace. Need intensive!")
	assert.Contains(t, out, "Days are too short to be relaxed. Get up!")
}

func TestFormatPaceTable(t *testing.T) {
	out := FormatPaceTable(timeline.ResolvePace(38, domain.PaceIntensive))

	assert.Contains(t, out, "PACE")
	assert.Contains(t, out, "disabled")
	assert.Contains(t, out, "You have plenty of time. No need for intensive pace.")
}

func TestFormatSnapshot_NotReady(t *testing.T) {
	assert.Contains(t, FormatSnapshot(timeline.Snapshot{}), "Select a start and end date")
}

func TestFormatBanner(t *testing.T) {
	r := testutil.Range("2024-03-01", "2024-03-10")
	b := timeline.Classify(10, r)

	assert.Contains(t, FormatBanner(b), "Minimum 15 days required. You have 10 days.")
}

func TestFormatItinerary(t *testing.T) {
	resp := contract.PlanResponse{
		Schedule: []contract.DayPlan{{DayNumber: 1, Topics: []contract.TopicBlock{
			{Course: "Python", Module: "Basics", Topics: "vars", ColabLink: "https://colab.example.com/a"},
			{Course: "Python", Module: "Loops", Topics: "for", ColabLink: "nan"},
		}}},
		Metrics: contract.PlanMetrics{ScheduledDays: 1, TotalModules: 2, FinishDate: "2024-03-01", BufferDays: 14},
	}
	it, err := render.Build(resp, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), domain.PaceBalanced)
	require.NoError(t, err)

	out := FormatItinerary(it)

	assert.Contains(t, out, "STUDY PLAN")
	assert.Contains(t, out, "Day 1 — Friday, March 1 (2 blocks)")
	assert.Contains(t, out, "Python — Basics")
	assert.Contains(t, out, "↗ https://colab.example.com/a")
	assert.Equal(t, 1, strings.Count(out, "↗"))
	assert.Contains(t, out, "Finish by March 1, 2024 with 14 buffer days")
	assert.Contains(t, out, "Balanced")
}

func TestFormatModules(t *testing.T) {
	set := domain.NewCompletedModuleSet("SQL - Joins")

	out := FormatModules([]string{"Python - Basics", "SQL - Joins"}, set)

	assert.Contains(t, out, "[ ] Python - Basics")
	assert.Contains(t, out, "SQL - Joins")
	assert.Contains(t, out, "1 selected")
	assert.Contains(t, FormatModules(nil, nil), "No modules")
}

func TestNotice(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"backend verbatim", &planclient.BackendError{Message: "No schedule generated"}, "No schedule generated"},
		{"incomplete", service.ErrIncompleteRange, "Please select both start and end dates"},
		{"too short", service.ErrRangeTooShort, "Minimum 15 days required"},
		{"transport", fmt.Errorf("%w: %w", service.ErrGenerateFailed, planclient.ErrTimeout),
			"Failed to generate schedule: plan backend request timed out"},
		{"download", fmt.Errorf("%w: %w", service.ErrDownloadFailed, planclient.ErrBackendUnavailable),
			"Failed to download: plan backend unavailable"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Notice(tc.err))
		})
	}
}
