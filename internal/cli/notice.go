package cli

import "github.com/alexanderramin/studyplan/internal/cli/formatter"

// noticeError presents an orchestrator error as its user notice while
// keeping the original chain for errors.Is.
type noticeError struct {
	err error
}

func (e noticeError) Error() string { return formatter.Notice(e.err) }
func (e noticeError) Unwrap() error { return e.err }

func asNotice(err error) error {
	if err == nil {
		return nil
	}
	return noticeError{err: err}
}
