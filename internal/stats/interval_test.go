package stats

import (
	"math"
	"testing"
)

func TestInterval(t *testing.T) {
	t.Run("large sample normal interval", func(t *testing.T) {
		sum := SampleSummary{Mean: 50, StdDev: 5, N: 30}
		d, err := ChooseDist(sum.N, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res, err := Interval(sum, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(res.StdErr-0.9129) > 1e-4 {
			t.Fatalf("expected stderr ~0.9129, got %g", res.StdErr)
		}
		if math.Abs(res.Margin-1.789) > 1e-3 {
			t.Fatalf("expected margin ~1.789, got %g", res.Margin)
		}
		if math.Abs(res.Lower-48.21) > 1e-2 || math.Abs(res.Upper-51.79) > 1e-2 {
			t.Fatalf("expected interval ~[48.21, 51.79], got [%g, %g]", res.Lower, res.Upper)
		}
	})

	t.Run("small sample widens the interval", func(t *testing.T) {
		sum := SampleSummary{Mean: 50, StdDev: math.Sqrt(10), N: 7}
		small, err := ChooseDist(sum.N, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		large, err := ChooseDist(30, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resT, err := Interval(sum, small)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resZ, err := Interval(sum, large)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resT.Margin <= resZ.Margin {
			t.Fatalf("expected t margin %g to exceed z margin %g", resT.Margin, resZ.Margin)
		}
	})

	t.Run("bounds bracket the mean symmetrically", func(t *testing.T) {
		cases := []SampleSummary{
			{Mean: 50, StdDev: 5, N: 30},
			{Mean: -3.5, StdDev: 1.25, N: 12},
			{Mean: 0, StdDev: 0, N: 5},
		}
		for _, sum := range cases {
			d, err := ChooseDist(sum.N, 0.9)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			res, err := Interval(sum, d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Lower > sum.Mean || res.Upper < sum.Mean {
				t.Fatalf("interval [%g, %g] does not contain mean %g", res.Lower, res.Upper, sum.Mean)
			}
			if res.Margin < 0 {
				t.Fatalf("negative margin %g", res.Margin)
			}
			if width := res.Upper - res.Lower; math.Abs(width-2*res.Margin) > 1e-12 {
				t.Fatalf("width %g differs from 2*margin %g", width, 2*res.Margin)
			}
		}
	})

	t.Run("identical inputs give identical outputs", func(t *testing.T) {
		sum := SampleSummary{Mean: 50, StdDev: 5, N: 17}
		d1, _ := ChooseDist(sum.N, 0.95)
		d2, _ := ChooseDist(sum.N, 0.95)
		r1, err := Interval(sum, d1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r2, err := Interval(sum, d2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r1 != r2 {
			t.Fatalf("expected identical results, got %+v and %+v", r1, r2)
		}
	})
}
