// Package session owns the in-memory result of the last successful plan
// generation. Nothing is persisted; the session lives as long as the
// process.
package session

import (
	"sync"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// Result is the (schedule, start date, pace) triple kept for export.
type Result struct {
	Schedule  []contract.DayPlan
	StartDate string
	Pace      domain.Pace
}

// ExportRequest converts the result into the download body.
func (r Result) ExportRequest() contract.ExportRequest {
	return contract.ExportRequest{
		Schedule:  cloneSchedule(r.Schedule),
		StartDate: r.StartDate,
		Pace:      r.Pace,
	}
}

// Session is safe for concurrent use; bubbletea commands run on their own
// goroutines.
type Session struct {
	mu      sync.RWMutex
	current *Result
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Store replaces the current result.
func (s *Session) Store(r Result) {
	r.Schedule = cloneSchedule(r.Schedule)
	s.mu.Lock()
	s.current = &r
	s.mu.Unlock()
}

// Current returns a copy of the stored result. ok is false before the
// first successful generation.
func (s *Session) Current() (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Result{}, false
	}
	r := *s.current
	r.Schedule = cloneSchedule(r.Schedule)
	return r, true
}

// Reset drops the stored result.
func (s *Session) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func cloneSchedule(in []contract.DayPlan) []contract.DayPlan {
	if in == nil {
		return nil
	}
	out := make([]contract.DayPlan, len(in))
	for i, d := range in {
		out[i] = contract.DayPlan{
			DayNumber: d.DayNumber,
			Topics:    append([]contract.TopicBlock(nil), d.Topics...),
		}
	}
	return out
}
