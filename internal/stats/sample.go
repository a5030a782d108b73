package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SampleSummary describes a univariate sample by its mean, sample
// standard deviation and size. It is either entered directly or reduced
// from a raw sample via Summarize.
type SampleSummary struct {
	Mean   float64
	StdDev float64
	N      int
}

// NewSummary validates directly-entered summary statistics.
func NewSummary(mean, stdDev float64, n int) (SampleSummary, error) {
	if n < 2 {
		return SampleSummary{}, fmt.Errorf("%w: sample size %d, need at least 2", ErrDomain, n)
	}
	if stdDev < 0 {
		return SampleSummary{}, fmt.Errorf("%w: negative standard deviation %g", ErrDomain, stdDev)
	}
	return SampleSummary{Mean: mean, StdDev: stdDev, N: n}, nil
}

// StdErr returns the standard error of the mean, stdDev/sqrt(n).
// Both the interval estimator and the hypothesis tester go through this
// single definition.
func (s SampleSummary) StdErr() float64 {
	return s.StdDev / math.Sqrt(float64(s.N))
}

// ParseSample parses comma-separated numeric text into a raw sample.
// Tokens are whitespace-trimmed and must all parse as finite numbers;
// a single bad token rejects the whole input.
func ParseSample(text string) ([]float64, error) {
	tokens := strings.Split(text, ",")
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty value in %q", ErrParse, text)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value %q", ErrParse, tok)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value %q", ErrParse, tok)
		}
		values = append(values, v)
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 values, got %d", ErrParse, len(values))
	}
	return values, nil
}

// Summarize reduces a raw sample to its summary statistics. The standard
// deviation uses Bessel's correction (n-1 denominator), which is why a
// sample of fewer than 2 values is rejected.
func Summarize(values []float64) (SampleSummary, error) {
	if len(values) < 2 {
		return SampleSummary{}, fmt.Errorf("%w: need at least 2 values, got %d", ErrParse, len(values))
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	stdDev := math.Sqrt(sumSq / float64(len(values)-1))

	return SampleSummary{Mean: mean, StdDev: stdDev, N: len(values)}, nil
}
