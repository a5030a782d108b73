package stats

import "fmt"

// IntervalResult is a two-sided confidence interval around the sample
// mean.
type IntervalResult struct {
	Critical float64
	StdErr   float64
	Margin   float64 // Critical * StdErr, half-width of the interval
	Lower    float64
	Upper    float64
}

// Interval computes the confidence interval for the mean using the
// critical value of the supplied reference distribution.
func Interval(sum SampleSummary, d Dist) (IntervalResult, error) {
	if sum.N < 2 {
		return IntervalResult{}, fmt.Errorf("%w: sample size %d, need at least 2", ErrDomain, sum.N)
	}
	if sum.StdDev < 0 {
		return IntervalResult{}, fmt.Errorf("%w: negative standard deviation %g", ErrDomain, sum.StdDev)
	}

	se := sum.StdErr()
	margin := d.Critical * se
	return IntervalResult{
		Critical: d.Critical,
		StdErr:   se,
		Margin:   margin,
		Lower:    sum.Mean - margin,
		Upper:    sum.Mean + margin,
	}, nil
}
