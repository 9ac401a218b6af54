package formatter

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/studyplan/internal/planclient"
	"github.com/alexanderramin/studyplan/internal/service"
)

// Notice turns an orchestrator error into the message shown to the user.
// Backend-reported messages are passed through untouched.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var be *planclient.BackendError
	switch {
	case errors.As(err, &be):
		return be.Message
	case errors.Is(err, service.ErrIncompleteRange):
		return "Please select both start and end dates"
	case errors.Is(err, service.ErrRangeTooShort):
		return "Minimum 15 days required"
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
