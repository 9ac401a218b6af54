package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/timeline"
)

var (
	// ErrInvalidDates covers missing or malformed request dates.
	ErrInvalidDates = errors.New("invalid dates")
	// ErrRangeTooShort mirrors the client-side minimum.
	ErrRangeTooShort = errors.New("Minimum 15 days required")
	// ErrNothingToSchedule is returned when every module is completed.
	ErrNothingToSchedule = errors.New("No schedule generated")
)

// Plan computes the schedule and metrics for req against catalog.
func Plan(catalog []domain.CatalogModule, req contract.PlanRequest) (*contract.PlanResponse, error) {
	r, err := domain.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}
	days, ok := timeline.DayCount(r)
	if !ok {
		return nil, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidDates)
	}
	if days < timeline.MinDays {
		return nil, ErrRangeTooShort
	}

	pace, ok := domain.ParsePace(string(req.Pace))
	if !ok {
		pace = domain.PaceBalanced
	}

	buckets := Distribute(Remaining(catalog, req.CompletedModules), days, pace)
	if len(buckets) == 0 {
		return nil, ErrNothingToSchedule
	}

	schedule := make([]contract.DayPlan, len(buckets))
	total := 0
	for i, bucket := range buckets {
		topics := make([]contract.TopicBlock, len(bucket))
		for j, m := range bucket {
			topics[j] = contract.TopicBlock{
				Course:    m.Course,
				Module:    m.Module,
				Topics:    m.Topics,
				ColabLink: strings.TrimSpace(m.ColabLink),
			}
		}
		total += len(topics)
		schedule[i] = contract.DayPlan{DayNumber: i + 1, Topics: topics}
	}

	finish := r.Start.AddDate(0, 0, len(schedule)-1)
	return &contract.PlanResponse{
		Success:  true,
		Schedule: schedule,
		Metrics: contract.PlanMetrics{
			ScheduledDays: len(schedule),
			TotalModules:  total,
			FinishDate:    domain.FormatDate(finish),
			BufferDays:    days - len(schedule),
		},
	}, nil
}
