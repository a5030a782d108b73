package stats

import "errors"

// Errors returned by the inference engine. Every failure is a
// deterministic function of the inputs; callers should not retry.
var (
	ErrParse            = errors.New("sample text could not be parsed")
	ErrDomain           = errors.New("parameter outside valid domain")
	ErrShapeMismatch    = errors.New("paired samples differ in length")
	ErrInsufficientData = errors.New("insufficient data")
)
