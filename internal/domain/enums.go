package domain

import "strings"

type Pace string

const (
	PaceIntensive Pace = "intensive"
	PaceBalanced  Pace = "balanced"
	PaceRelaxed   Pace = "relaxed"
)

// AllPaces lists the pace presets in display order.
var AllPaces = []Pace{PaceIntensive, PaceBalanced, PaceRelaxed}

// ParsePace maps user input onto a Pace. Matching is case-insensitive.
func ParsePace(s string) (Pace, bool) {
	p := Pace(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PaceIntensive, PaceBalanced, PaceRelaxed:
		return p, true
	}
	return "", false
}

// Valid reports whether p is one of the three presets.
func (p Pace) Valid() bool {
	switch p {
	case PaceIntensive, PaceBalanced, PaceRelaxed:
		return true
	}
	return false
}

// Label returns the capitalised pace name, e.g. "Balanced".
func (p Pace) Label() string {
	if p == "" {
		return ""
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

type BannerState string

const (
	BannerNormal  BannerState = "normal"
	BannerWarning BannerState = "warning"
	BannerError   BannerState = "error"
)

type CompletionState string

const (
	CompletionSuccess CompletionState = "success"
	CompletionWarning CompletionState = "warning"
)
