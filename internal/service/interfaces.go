package service

import (
	"context"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/render"
)

// GenerateInput is the user's validated selection at submission time.
type GenerateInput struct {
	Range     domain.DateRange
	Pace      domain.Pace
	Completed []string
}

// PlanService orchestrates plan generation and export against the backend.
type PlanService interface {
	// Generate checks the range locally, requests a plan and renders it.
	// Nothing is sent when the local check fails.
	Generate(ctx context.Context, in GenerateInput) (*render.Itinerary, error)

	// Download exports the last successful plan. It returns a nil Artifact
	// and makes no request when nothing has been generated yet.
	Download(ctx context.Context) (*Artifact, error)

	// Modules lists the module identifiers the backend knows about.
	Modules(ctx context.Context) ([]string, error)
}
