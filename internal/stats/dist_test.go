package stats

import (
	"errors"
	"math"
	"testing"
)

func TestChooseDist(t *testing.T) {
	t.Run("uses normal at and above the threshold", func(t *testing.T) {
		for _, n := range []int{30, 31, 50, 1000} {
			d, err := ChooseDist(n, 0.95)
			if err != nil {
				t.Fatalf("n=%d: unexpected error: %v", n, err)
			}
			if d.Kind != Normal {
				t.Fatalf("n=%d: expected normal, got %s", n, d.Kind)
			}
		}
	})

	t.Run("uses student-t below the threshold", func(t *testing.T) {
		for n := 2; n < NormalApproxMinN; n++ {
			d, err := ChooseDist(n, 0.95)
			if err != nil {
				t.Fatalf("n=%d: unexpected error: %v", n, err)
			}
			if d.Kind != StudentT {
				t.Fatalf("n=%d: expected student-t, got %s", n, d.Kind)
			}
			if d.DF != n-1 {
				t.Fatalf("n=%d: expected df=%d, got %d", n, n-1, d.DF)
			}
		}
	})

	t.Run("normal critical value at 95 percent", func(t *testing.T) {
		d, err := ChooseDist(30, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(d.Critical-1.96) > 1e-3 {
			t.Fatalf("expected critical ~1.96, got %g", d.Critical)
		}
	})

	t.Run("t critical value exceeds z for small samples", func(t *testing.T) {
		d, err := ChooseDist(7, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(d.Critical-2.447) > 1e-3 {
			t.Fatalf("expected critical ~2.447 for df=6, got %g", d.Critical)
		}
		z, err := ChooseDist(30, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Critical <= z.Critical {
			t.Fatalf("expected t critical %g to exceed z critical %g", d.Critical, z.Critical)
		}
	})

	t.Run("rejects boundary confidence levels", func(t *testing.T) {
		for _, c := range []float64{0, 1, -0.5, 1.5} {
			if _, err := ChooseDist(30, c); !errors.Is(err, ErrDomain) {
				t.Fatalf("confidence=%g: expected ErrDomain, got %v", c, err)
			}
		}
	})

	t.Run("rejects sample size below 2", func(t *testing.T) {
		if _, err := ChooseDist(1, 0.95); !errors.Is(err, ErrDomain) {
			t.Fatalf("expected ErrDomain, got %v", err)
		}
	})

	t.Run("cdf matches the selected distribution", func(t *testing.T) {
		d, err := ChooseDist(7, 0.95)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The CDF at the two-sided critical value is (1+confidence)/2.
		got := d.CDF(d.Critical)
		if math.Abs(got-0.975) > 1e-4 {
			t.Fatalf("expected CDF at critical = 0.975, got %g", got)
		}
	})
}
