package stats

import (
	"fmt"

	mstats "github.com/aclements/go-moremath/stats"
)

// NormalApproxMinN is the sample size at or above which the standard
// normal distribution replaces Student's t as the reference
// distribution. The threshold is the conventional heuristic, not a
// statistical law; downstream output depends on it staying at 30.
const NormalApproxMinN = 30

// DistKind identifies the reference distribution.
type DistKind int

const (
	Normal DistKind = iota
	StudentT
)

func (k DistKind) String() string {
	if k == Normal {
		return "normal"
	}
	return "student-t"
}

// Dist is the selected reference distribution for a given sample size
// and confidence level. Both the interval estimator and the hypothesis
// tester consume the same Dist, so the normal-vs-t decision is made
// exactly once per computation.
type Dist struct {
	Kind       DistKind
	DF         int // degrees of freedom; 0 when Kind is Normal
	Confidence float64
	Critical   float64 // two-sided quantile at (1+Confidence)/2
}

// ChooseDist selects the reference distribution: normal for
// n >= NormalApproxMinN, Student's t with n-1 degrees of freedom below
// that. The confidence level must lie strictly inside (0,1); at the
// boundaries the quantile is infinite.
func ChooseDist(n int, confidence float64) (Dist, error) {
	if confidence <= 0 || confidence >= 1 {
		return Dist{}, fmt.Errorf("%w: confidence level %g not in (0,1)", ErrDomain, confidence)
	}
	if n < 2 {
		return Dist{}, fmt.Errorf("%w: sample size %d leaves no degrees of freedom", ErrDomain, n)
	}

	p := (1 + confidence) / 2
	if n >= NormalApproxMinN {
		return Dist{
			Kind:       Normal,
			Confidence: confidence,
			Critical:   mstats.StdNormal.InvCDF(p),
		}, nil
	}

	df := n - 1
	return Dist{
		Kind:       StudentT,
		DF:         df,
		Confidence: confidence,
		Critical:   mstats.InvCDF(mstats.TDist{V: float64(df)})(p),
	}, nil
}

// CDF evaluates the cumulative distribution function of the selected
// distribution at x.
func (d Dist) CDF(x float64) float64 {
	if d.Kind == Normal {
		return mstats.StdNormal.CDF(x)
	}
	return mstats.TDist{V: float64(d.DF)}.CDF(x)
}

// Label returns the human-readable methodology description shown next
// to results.
func (d Dist) Label() string {
	if d.Kind == Normal {
		return "Z-Test (Normal)"
	}
	return fmt.Sprintf("T-Test (Student's t, df=%d)", d.DF)
}
