package service

import "errors"

var (
	// ErrIncompleteRange blocks submission until both dates are chosen.
	ErrIncompleteRange = errors.New("please select both start and end dates")

	// ErrRangeTooShort blocks submission of a range below the minimum.
	ErrRangeTooShort = errors.New("minimum 15 days required")

	// ErrInvalidPace rejects a pace outside the three presets.
	ErrInvalidPace = errors.New("unknown study pace")

	// ErrGenerateFailed wraps transport and decoding failures of generate.
	ErrGenerateFailed = errors.New("failed to generate schedule")

	// ErrDownloadFailed wraps transport failures of download.
	ErrDownloadFailed = errors.New("failed to download")
)

// IsInputError reports whether err was raised by the local submission
// guard, before any request.
func IsInputError(err error) bool {
	return errors.Is(err, ErrIncompleteRange) ||
		errors.Is(err, ErrRangeTooShort) ||
		errors.Is(err, ErrInvalidPace)
}
