package render

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/session"
)

// Surface displays an itinerary. Each call replaces whatever was shown
// before.
type Surface interface {
	Show(it Itinerary)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(Itinerary)

func (f SurfaceFunc) Show(it Itinerary) { f(it) }

type nopSurface struct{}

func (nopSurface) Show(Itinerary) {}

// Renderer builds itineraries, pushes them to a Surface and records the
// result in the session for later export.
type Renderer struct {
	session *session.Session
	surface Surface
}

// NewRenderer returns a Renderer. A nil surface discards output.
func NewRenderer(s *session.Session, surface Surface) *Renderer {
	if surface == nil {
		surface = nopSurface{}
	}
	return &Renderer{session: s, surface: surface}
}

// Render builds the itinerary for resp. On error nothing is shown and the
// session keeps its previous result.
func (r *Renderer) Render(resp contract.PlanResponse, startDate string, pace domain.Pace) (Itinerary, error) {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return Itinerary{}, fmt.Errorf("parsing start date: %w", err)
	}
	it, err := Build(resp, start, pace)
	if err != nil {
		return Itinerary{}, err
	}

	r.surface.Show(it)
	if r.session != nil {
		r.session.Store(session.Result{
			Schedule:  resp.Schedule,
			StartDate: startDate,
			Pace:      pace,
		})
	}
	return it, nil
}
