// README: Request validator; cheap heuristic checks run before any provider is called.
package tripbrief

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrMissingDestination   = errors.New("please include the destination you want to visit")
	ErrMissingTravelerCount = errors.New("please say how many people are traveling (e.g. \"2 adults\", \"family\", \"solo\")")
	ErrMissingAgeInfo       = errors.New("please mention the travelers' ages (e.g. \"kids ages 8 and 11\", \"seniors\")")
)

const minRequestLength = 10

var (
	travelerCountPattern = regexp.MustCompile(`(?i)\d+\s*(people|person|traveler|adult|child)`)
	travelerGroupPattern = regexp.MustCompile(`(?i)solo|alone|myself|family|couple|group`)
	agePattern           = regexp.MustCompile(`(?i)age|years old|kid|child|adult|senior|teenager|toddler|infant`)
)

// ValidationError rejects a request before any network call. Reason is one of the Err* sentinels.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	return "invalid trip request: " + e.Reason.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Code is the stable machine-readable form of Reason.
func (e *ValidationError) Code() string {
	switch e.Reason {
	case ErrMissingDestination:
		return "missing_destination"
	case ErrMissingTravelerCount:
		return "missing_traveler_count"
	case ErrMissingAgeInfo:
		return "missing_age_info"
	default:
		return "invalid"
	}
}

// Validate checks, in order, for a destination-length signal, a traveler-count signal
// and an age signal. It returns the first failure as a *ValidationError.
func Validate(text string) error {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= minRequestLength {
		return &ValidationError{Reason: ErrMissingDestination}
	}
	if !travelerCountPattern.MatchString(text) && !travelerGroupPattern.MatchString(text) {
		return &ValidationError{Reason: ErrMissingTravelerCount}
	}
	if !agePattern.MatchString(text) {
		return &ValidationError{Reason: ErrMissingAgeInfo}
	}
	return nil
}
