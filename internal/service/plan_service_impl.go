package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/planclient"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/session"
	"github.com/alexanderramin/studyplan/internal/timeline"
)

// Artifact is a downloaded plan file.
type Artifact struct {
	Filename string
	Data     []byte
}

// Save writes the artifact into dir and returns the file path.
func (a *Artifact) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", a.Filename, err)
	}
	return path, nil
}

type planService struct {
	client   planclient.Client
	renderer *render.Renderer
	session  *session.Session
	observer UseCaseObserver
}

// NewPlanService wires the orchestrator. The renderer must write into the
// same session that Download reads from.
func NewPlanService(
	client planclient.Client,
	renderer *render.Renderer,
	sess *session.Session,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		client:   client,
		renderer: renderer,
		session:  sess,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Generate(ctx context.Context, in GenerateInput) (it *render.Itinerary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"pace": string(in.Pace)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	days, ok := timeline.DayCount(in.Range)
	if !ok {
		return nil, ErrIncompleteRange
	}
	fields["days"] = days
	if days < timeline.MinDays {
		return nil, ErrRangeTooShort
	}
	if !in.Pace.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPace, in.Pace)
	}

	req := contract.NewPlanRequest(in.Range, in.Pace, in.Completed)
	fields["completed"] = len(req.CompletedModules)

	resp, err := s.client.Generate(ctx, req)
	if err != nil {
		var be *planclient.BackendError
		if errors.As(err, &be) {
			return nil, be
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	rendered, err := s.renderer.Render(*resp, req.StartDate, req.Pace)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}
	fields["scheduled_days"] = len(rendered.Days)
	return &rendered, nil
}

func (s *planService) Download(ctx context.Context) (art *Artifact, err error) {
	current, ok := s.session.Current()
	if !ok {
		return nil, nil
	}

	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "download-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"start_date": current.StartDate},
		})
	}()

	data, err := s.client.Download(ctx, current.ExportRequest())
	if err != nil {
		var be *planclient.BackendError
		if errors.As(err, &be) {
			return nil, be
		}
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	return &Artifact{
		Filename: contract.ExportFilename(current.StartDate),
		Data:     data,
	}, nil
}

func (s *planService) Modules(ctx context.Context) ([]string, error) {
	mods, err := s.client.Modules(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading modules: %w", err)
	}
	return mods, nil
}
