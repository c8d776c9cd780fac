package apperrors

import "errors"

// Skip signals that a payload is intentionally not transformed (for example a
// form variant this deployment does not ingest). It flows through error
// returns but is not a failure: callers treat the job as completed.
type Skip struct {
	Reason string
}

func (s *Skip) Error() string {
	return "transformation skipped: " + s.Reason
}

func NewSkip(reason string) *Skip {
	return &Skip{Reason: reason}
}

// IsSkip reports whether err is a skip signal.
func IsSkip(err error) bool {
	var s *Skip
	return errors.As(err, &s)
}
