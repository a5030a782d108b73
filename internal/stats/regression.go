package stats

import (
	"fmt"
	"math"

	mstats "github.com/aclements/go-moremath/stats"
)

// Fit is an ordinary least-squares line fitted to paired observations,
// with the standard fit-quality statistics.
type Fit struct {
	Slope       float64
	Intercept   float64
	R           float64 // Pearson correlation
	RSquared    float64
	PValue      float64 // two-sided t-test on the slope, df = n-2
	SlopeStdErr float64
	N           int
}

// FitLinear fits y = slope*x + intercept by closed-form least squares
// and returns the fit together with the residuals y[i] - predicted[i].
//
// The slope test always uses Student's t with n-2 degrees of freedom;
// the large-sample normal approximation applies only to the univariate
// mean estimator, not here.
func FitLinear(x, y []float64) (Fit, []float64, error) {
	if len(x) != len(y) {
		return Fit{}, nil, fmt.Errorf("%w: x has %d values, y has %d", ErrShapeMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return Fit{}, nil, fmt.Errorf("%w: need at least 2 pairs, got %d", ErrInsufficientData, len(x))
	}

	n := len(x)
	meanX := mean(x)
	meanY := mean(y)

	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if sxx == 0 {
		return Fit{}, nil, fmt.Errorf("%w: x values are all identical", ErrDomain)
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	r := 0.0
	if syy > 0 {
		r = sxy / math.Sqrt(sxx*syy)
		// Guard against floating-point overshoot on collinear data.
		if r > 1 {
			r = 1
		} else if r < -1 {
			r = -1
		}
	}

	fit := Fit{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		RSquared:  r * r,
		N:         n,
	}

	residuals := make([]float64, n)
	var rss float64
	for i := range x {
		residuals[i] = y[i] - fit.Predict(x[i])
		rss += residuals[i] * residuals[i]
	}

	df := n - 2
	switch {
	case df < 1:
		// Two points determine the line exactly; no error to estimate.
		fit.SlopeStdErr = 0
		fit.PValue = 1
	default:
		fit.SlopeStdErr = math.Sqrt(rss / float64(df) / sxx)
		fit.PValue = slopePValue(slope, fit.SlopeStdErr, df)
	}

	return fit, residuals, nil
}

// Predict evaluates the fitted line at x. Extrapolation beyond the
// fitted range is the caller's responsibility.
func (f Fit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

func slopePValue(slope, stdErr float64, df int) float64 {
	if stdErr == 0 {
		// Perfect fit: a nonzero slope is infinitely significant.
		if slope == 0 {
			return 1
		}
		return 0
	}
	t := math.Abs(slope / stdErr)
	p := 2 * (1 - mstats.TDist{V: float64(df)}.CDF(t))
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return p
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
