package contract

import (
	"github.com/alexanderramin/studyplan/internal/domain"
)

// PlanRequest is the body of POST /generate.
type PlanRequest struct {
	StartDate        string      `json:"start_date"`
	EndDate          string      `json:"end_date"`
	Pace             domain.Pace `json:"pace"`
	CompletedModules []string    `json:"completed_modules"`
}

// NewPlanRequest builds a request from a complete range. completed is
// copied so later changes to the caller's slice don't leak into the body.
func NewPlanRequest(r domain.DateRange, pace domain.Pace, completed []string) PlanRequest {
	ids := make([]string, len(completed))
	copy(ids, completed)
	return PlanRequest{
		StartDate:        r.StartString(),
		EndDate:          r.EndString(),
		Pace:             pace,
		CompletedModules: ids,
	}
}

// TopicBlock is one scheduled module.
type TopicBlock struct {
	Course    string `json:"course"`
	Module    string `json:"module"`
	Topics    string `json:"topics"`
	ColabLink string `json:"colab_link,omitempty"`
}

// DayPlan is one day of the schedule. DayNumber is 1-based.
type DayPlan struct {
	DayNumber int          `json:"day_number"`
	Topics    []TopicBlock `json:"topics"`
}

// PlanMetrics summarises a generated schedule.
type PlanMetrics struct {
	ScheduledDays int    `json:"scheduled_days"`
	TotalModules  int    `json:"total_modules"`
	FinishDate    string `json:"finish_date"`
	// BufferDays is available days minus scheduled days; negative when the
	// plan overruns the range.
	BufferDays int `json:"buffer_days"`
}

// PlanResponse is the body returned by POST /generate. Error is set
// instead of Schedule/Metrics when the backend refuses the request.
type PlanResponse struct {
	Success  bool        `json:"success,omitempty"`
	Schedule []DayPlan   `json:"schedule,omitempty"`
	Metrics  PlanMetrics `json:"metrics"`
	Error    string      `json:"error,omitempty"`
}

// ExportRequest is the body of POST /download: the last successful result.
type ExportRequest struct {
	Schedule  []DayPlan   `json:"schedule"`
	StartDate string      `json:"start_date"`
	Pace      domain.Pace `json:"pace"`
}

// ErrorBody is the JSON shape of an application-level failure.
type ErrorBody struct {
	Error string `json:"error"`
}

// ModuleList is the body returned by GET /modules.
type ModuleList struct {
	Modules []string `json:"modules"`
}

// ExportFilename is the name the client saves a downloaded plan under.
func ExportFilename(startDate string) string {
	return "study_plan_" + startDate + ".xlsx"
}

// TopicCount returns the number of topic blocks across all days.
func TopicCount(days []DayPlan) int {
	n := 0
	for _, d := range days {
		n += len(d.Topics)
	}
	return n
}
