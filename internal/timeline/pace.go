package timeline

import "github.com/alexanderramin/studyplan/internal/domain"

// PaceOption is the resolved state of one pace control.
type PaceOption struct {
	Pace     domain.Pace
	Eligible bool
	// Reason explains why the option is disabled. Empty when eligible.
	Reason string
}

// PaceResolution is the outcome of applying the pace rules to a day count.
type PaceResolution struct {
	Days    int
	Options []PaceOption
	Active  domain.Pace
}

// Option returns the resolved option for p.
func (r PaceResolution) Option(p domain.Pace) PaceOption {
	for _, o := range r.Options {
		if o.Pace == p {
			return o
		}
	}
	return PaceOption{Pace: p}
}

// Eligible reports whether p can be selected.
func (r PaceResolution) Eligible(p domain.Pace) bool {
	return r.Option(p).Eligible
}

// paceRule disables one option when its predicate holds and may move the
// active selection. Rules run in table order and later rules win.
type paceRule struct {
	applies  func(days int) bool
	disable  domain.Pace
	reason   string
	reassign func(active domain.Pace) domain.Pace
}

const (
	relaxedMinDays   = 25
	balancedMinDays  = 20
	intensiveMaxDays = 35
)

var paceRules = []paceRule{
	{
		applies:  func(d int) bool { return d < relaxedMinDays },
		disable:  domain.PaceRelaxed,
		reason:   "Days are too short to be relaxed. Get up!",
		reassign: moveOff(domain.PaceRelaxed, domain.PaceBalanced),
	},
	{
		applies:  func(d int) bool { return d < balancedMinDays },
		disable:  domain.PaceBalanced,
		reason:   "Not enough days for balanced pace. Need intensive!",
		reassign: force(domain.PaceIntensive),
	},
	{
		applies:  func(d int) bool { return d > intensiveMaxDays },
		disable:  domain.PaceIntensive,
		reason:   "You have plenty of time. No need for intensive pace.",
		reassign: moveOff(domain.PaceIntensive, domain.PaceBalanced),
	},
}

func moveOff(from, to domain.Pace) func(domain.Pace) domain.Pace {
	return func(active domain.Pace) domain.Pace {
		if active == from {
			return to
		}
		return active
	}
}

func force(to domain.Pace) func(domain.Pace) domain.Pace {
	return func(domain.Pace) domain.Pace { return to }
}

// fallbackOrder is consulted only if the rule table leaves the active pace
// disabled.
var fallbackOrder = []domain.Pace{domain.PaceBalanced, domain.PaceIntensive, domain.PaceRelaxed}

// ResolvePace applies every rule in order to days. An unknown active pace
// is treated as balanced. The returned Active is always eligible.
func ResolvePace(days int, active domain.Pace) PaceResolution {
	if !active.Valid() {
		active = domain.PaceBalanced
	}

	res := PaceResolution{Days: days, Options: make([]PaceOption, len(domain.AllPaces))}
	for i, p := range domain.AllPaces {
		res.Options[i] = PaceOption{Pace: p, Eligible: true}
	}

	for _, rule := range paceRules {
		if !rule.applies(days) {
			continue
		}
		for i := range res.Options {
			if res.Options[i].Pace == rule.disable {
				res.Options[i].Eligible = false
				res.Options[i].Reason = rule.reason
			}
		}
		active = rule.reassign(active)
	}

	if !res.Eligible(active) {
		for _, p := range fallbackOrder {
			if res.Eligible(p) {
				active = p
				break
			}
		}
	}
	res.Active = active
	return res
}
