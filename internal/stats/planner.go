package stats

import (
	"fmt"
	"math"
)

// SampleSizePlan is the minimum sample size achieving a target margin
// of error, and how far the current sample falls short.
type SampleSizePlan struct {
	TargetMargin float64
	RequiredN    int
	Deficit      int // max(0, RequiredN - currentN)
}

// CurvePoint is one point of the diagnostic margin-of-error-vs-n curve,
// ready for plotting.
type CurvePoint struct {
	N      int
	Margin float64
}

// PlanSampleSize inverts margin = critical*stdDev/sqrt(n) to find the
// smallest n whose margin of error is at most targetMargin.
//
// The critical value is held fixed across the inversion even though for
// the Student's-t branch it really depends on n through the degrees of
// freedom. This is a known approximation kept for output compatibility.
func PlanSampleSize(d Dist, stdDev float64, currentN int, targetMargin float64) (SampleSizePlan, error) {
	if targetMargin <= 0 {
		return SampleSizePlan{}, fmt.Errorf("%w: target margin of error %g must be positive", ErrDomain, targetMargin)
	}
	if stdDev < 0 {
		return SampleSizePlan{}, fmt.Errorf("%w: negative standard deviation %g", ErrDomain, stdDev)
	}

	root := d.Critical * stdDev / targetMargin
	requiredN := int(math.Ceil(root * root))

	deficit := requiredN - currentN
	if deficit < 0 {
		deficit = 0
	}

	return SampleSizePlan{
		TargetMargin: targetMargin,
		RequiredN:    requiredN,
		Deficit:      deficit,
	}, nil
}

// MarginCurve computes margin of error as a function of sample size for
// n in [max(2, currentN/2), currentN*3), exposing the monotonically
// decreasing precision-vs-size relationship. The lower bound clamps to
// 2, below which the sample standard deviation is undefined.
func MarginCurve(d Dist, stdDev float64, currentN int) []CurvePoint {
	lo := currentN / 2
	if lo < 2 {
		lo = 2
	}
	hi := currentN * 3

	var points []CurvePoint
	for n := lo; n < hi; n++ {
		points = append(points, CurvePoint{
			N:      n,
			Margin: d.Critical * stdDev / math.Sqrt(float64(n)),
		})
	}
	return points
}
