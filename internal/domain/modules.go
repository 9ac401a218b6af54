package domain

import (
	"sort"
	"sync"
)

// ModuleID formats the identifier the backend uses to match completed
// modules: "<Course> - <Module>".
func ModuleID(course, module string) string {
	return course + " - " + module
}

// CompletedModuleSet is the set of module identifiers the user has already
// finished. Order carries no meaning and duplicates collapse.
type CompletedModuleSet struct {
	mu        sync.Mutex
	ids       map[string]struct{}
	nextID    int
	listeners map[int]func(count int)
	order     []int
}

// NewCompletedModuleSet returns a set seeded with ids.
func NewCompletedModuleSet(ids ...string) *CompletedModuleSet {
	s := &CompletedModuleSet{
		ids:       make(map[string]struct{}, len(ids)),
		listeners: make(map[int]func(int)),
	}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Set marks id as completed or not. It notifies subscribers only when the
// membership actually changed.
func (s *CompletedModuleSet) Set(id string, done bool) {
	if id == "" {
		return
	}
	s.mu.Lock()
	_, had := s.ids[id]
	switch {
	case done && !had:
		s.ids[id] = struct{}{}
	case !done && had:
		delete(s.ids, id)
	default:
		s.mu.Unlock()
		return
	}
	n := len(s.ids)
	fns := make([]func(int), 0, len(s.order))
	for _, lid := range s.order {
		fns = append(fns, s.listeners[lid])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}

// Toggle flips the membership of id and returns the new state.
func (s *CompletedModuleSet) Toggle(id string) bool {
	done := !s.Has(id)
	s.Set(id, done)
	return done
}

// Has reports whether id is in the set.
func (s *CompletedModuleSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of completed modules.
func (s *CompletedModuleSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the members sorted, so requests are deterministic.
func (s *CompletedModuleSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Subscribe registers fn to receive the new count after every change.
// The returned func removes the subscription.
func (s *CompletedModuleSet) Subscribe(fn func(count int)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
