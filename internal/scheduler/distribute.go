package scheduler

import (
	"github.com/alexanderramin/studyplan/internal/domain"
)

// Remaining drops the modules whose identifier is in completed, keeping
// catalog order.
func Remaining(catalog []domain.CatalogModule, completed []string) []domain.CatalogModule {
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	out := make([]domain.CatalogModule, 0, len(catalog))
	for _, m := range catalog {
		if _, ok := done[m.ID()]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// extraDays returns the day indices that receive one module above the base
// load. Intensive front-loads, relaxed back-loads and anything else spreads
// them at even steps.
func extraDays(days, extra int, pace domain.Pace) map[int]bool {
	out := make(map[int]bool, extra)
	if extra <= 0 || days <= 0 {
		return out
	}
	switch pace {
	case domain.PaceIntensive:
		for i := 0; i < extra; i++ {
			out[i] = true
		}
	case domain.PaceRelaxed:
		for i := days - extra; i < days; i++ {
			out[i] = true
		}
	default:
		step := float64(days) / float64(extra)
		for i := 0; i < extra; i++ {
			out[int(float64(i)*step)] = true
		}
	}
	return out
}

// Distribute splits modules, in order, over at most days days. With no more
// modules than days each module gets its own day. Otherwise every day gets
// len(modules)/days modules and the remainder goes to the days chosen by
// pace. The result never contains an empty day.
func Distribute(modules []domain.CatalogModule, days int, pace domain.Pace) [][]domain.CatalogModule {
	n := len(modules)
	if n == 0 || days <= 0 {
		return nil
	}

	if n <= days {
		out := make([][]domain.CatalogModule, n)
		for i := range modules {
			out[i] = modules[i : i+1]
		}
		return out
	}

	base, extra := n/days, n%days
	bonus := extraDays(days, extra, pace)

	out := make([][]domain.CatalogModule, 0, days)
	next := 0
	for d := 0; d < days && next < n; d++ {
		today := base
		if bonus[d] {
			today++
		}
		end := min(next+today, n)
		if end > next {
			out = append(out, modules[next:end])
		}
		next = end
	}
	return out
}
