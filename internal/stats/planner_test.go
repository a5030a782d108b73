package stats

import (
	"errors"
	"math"
	"testing"
)

func TestPlanSampleSize(t *testing.T) {
	t.Run("inverts the margin formula", func(t *testing.T) {
		d, err := ChooseDist(30, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		plan, err := PlanSampleSize(d, 5, 30, 1.8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// (1.95996*5/1.8)^2 = 29.64, so 30 samples suffice.
		if plan.RequiredN != 30 {
			t.Fatalf("expected required n=30, got %d", plan.RequiredN)
		}
		if plan.Deficit != 0 {
			t.Fatalf("expected deficit 0, got %d", plan.Deficit)
		}
	})

	t.Run("reports the shortfall for small samples", func(t *testing.T) {
		d, err := ChooseDist(7, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		plan, err := PlanSampleSize(d, math.Sqrt(10), 7, 2.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// (2.44691*3.16228/2)^2 = 14.97, ceiling 15.
		if plan.RequiredN != 15 {
			t.Fatalf("expected required n=15, got %d", plan.RequiredN)
		}
		if plan.Deficit != 8 {
			t.Fatalf("expected deficit 8, got %d", plan.Deficit)
		}
	})

	t.Run("required n achieves the target margin", func(t *testing.T) {
		d, err := ChooseDist(30, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, target := range []float64{0.25, 0.5, 1, 1.789, 2.5} {
			plan, err := PlanSampleSize(d, 5, 30, target)
			if err != nil {
				t.Fatalf("target=%g: unexpected error: %v", target, err)
			}
			margin := d.Critical * 5 / math.Sqrt(float64(plan.RequiredN))
			if margin > target+1e-9 {
				t.Fatalf("target=%g: margin %g at n=%d exceeds target", target, margin, plan.RequiredN)
			}
		}
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		d, err := ChooseDist(30, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, target := range []float64{0, -1} {
			if _, err := PlanSampleSize(d, 5, 30, target); !errors.Is(err, ErrDomain) {
				t.Fatalf("target=%g: expected ErrDomain, got %v", target, err)
			}
		}
	})
}

func TestMarginCurve(t *testing.T) {
	t.Run("spans half to triple the current size", func(t *testing.T) {
		d, err := ChooseDist(10, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		points := MarginCurve(d, 5, 10)
		if len(points) == 0 {
			t.Fatal("expected points")
		}
		if points[0].N != 5 {
			t.Fatalf("expected first n=5, got %d", points[0].N)
		}
		if last := points[len(points)-1].N; last != 29 {
			t.Fatalf("expected last n=29, got %d", last)
		}
	})

	t.Run("clamps the lower bound to 2", func(t *testing.T) {
		d, err := ChooseDist(3, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		points := MarginCurve(d, 5, 3)
		if points[0].N != 2 {
			t.Fatalf("expected first n=2, got %d", points[0].N)
		}
	})

	t.Run("margin decreases monotonically", func(t *testing.T) {
		d, err := ChooseDist(20, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		points := MarginCurve(d, 5, 20)
		for i := 1; i < len(points); i++ {
			if points[i].Margin >= points[i-1].Margin {
				t.Fatalf("margin not decreasing at n=%d: %g >= %g", points[i].N, points[i].Margin, points[i-1].Margin)
			}
		}
	})
}
