package stats

import (
	"fmt"
	"math"
)

// Alpha is the two-sided significance threshold. It is fixed by the
// engine's contract; it lives here as a named constant so frontends can
// surface it without the engine becoming configurable.
const Alpha = 0.05

// HypothesisResult is the outcome of a two-sided test of the mean
// against a null value.
type HypothesisResult struct {
	NullValue   float64
	Statistic   float64
	PValue      float64
	Significant bool // PValue <= Alpha
}

// TestMean tests H0: mean == nullValue using the same reference
// distribution that produced the confidence interval. The p-value is
// two-sided, p = 2*(1 - CDF(|statistic|)), clamped to [0,1].
func TestMean(sum SampleSummary, d Dist, nullValue float64) (HypothesisResult, error) {
	if sum.N < 2 {
		return HypothesisResult{}, fmt.Errorf("%w: sample size %d, need at least 2", ErrDomain, sum.N)
	}

	se := sum.StdErr()
	var stat float64
	switch {
	case se > 0:
		stat = (sum.Mean - nullValue) / se
	case sum.Mean == nullValue:
		// Zero spread and mean equals the null: nothing to reject.
		stat = 0
	default:
		// Zero spread but the mean differs from the null, so the
		// difference is infinitely many standard errors away.
		stat = math.Inf(1)
		if sum.Mean < nullValue {
			stat = math.Inf(-1)
		}
	}

	p := 2 * (1 - d.CDF(math.Abs(stat)))
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	return HypothesisResult{
		NullValue:   nullValue,
		Statistic:   stat,
		PValue:      p,
		Significant: p <= Alpha,
	}, nil
}
