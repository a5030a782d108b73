package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"statlab/internal/stats"
	"statlab/internal/svg"
	"statlab/internal/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statlab",
		Short: "Confidence intervals, hypothesis tests and regression from the command line",
	}

	rootCmd.AddCommand(intervalCmd())
	rootCmd.AddCommand(testCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(regressCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sampleFlags collects the shared input flags: either --data with raw
// comma-separated values, or the --mean/--stddev/-n summary triple.
type sampleFlags struct {
	data       string
	mean       float64
	stdDev     float64
	n          int
	confidence float64
}

func (f *sampleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "raw sample as comma-separated values")
	cmd.Flags().Float64Var(&f.mean, "mean", 50, "sample mean (ignored with --data)")
	cmd.Flags().Float64Var(&f.stdDev, "stddev", 5, "sample standard deviation (ignored with --data)")
	cmd.Flags().IntVarP(&f.n, "n", "n", 30, "sample size (ignored with --data)")
	cmd.Flags().Float64Var(&f.confidence, "confidence", 0.95, "confidence level in (0,1)")
}

func (f *sampleFlags) resolve() (stats.SampleSummary, error) {
	if f.data != "" {
		values, err := stats.ParseSample(f.data)
		if err != nil {
			return stats.SampleSummary{}, err
		}
		return stats.Summarize(values)
	}
	return stats.NewSummary(f.mean, f.stdDev, f.n)
}

func intervalCmd() *cobra.Command {
	var flags sampleFlags

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Compute a confidence interval for the mean",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := flags.resolve()
			if err != nil {
				return err
			}
			d, err := stats.ChooseDist(sum.N, flags.confidence)
			if err != nil {
				return err
			}
			res, err := stats.Interval(sum, d)
			if err != nil {
				return err
			}

			printMethod(d, sum.N)
			printMetrics(
				metric{"Sample Mean", fmt.Sprintf("%.2f", sum.Mean)},
				metric{"Std Deviation", fmt.Sprintf("%.2f", sum.StdDev)},
				metric{"Std Error", fmt.Sprintf("%.4f", res.StdErr)},
				metric{"Critical Value", fmt.Sprintf("%.3f", res.Critical)},
				metric{"Margin of Error", fmt.Sprintf("±%.2f", res.Margin)},
			)
			color.Green("We are %.0f%% confident the true mean is between %.2f and %.2f",
				flags.confidence*100, res.Lower, res.Upper)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func testCmd() *cobra.Command {
	var flags sampleFlags
	var null float64

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the mean against a null hypothesis value",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := flags.resolve()
			if err != nil {
				return err
			}
			d, err := stats.ChooseDist(sum.N, flags.confidence)
			if err != nil {
				return err
			}

			nullValue := sum.Mean
			if cmd.Flags().Changed("null") {
				nullValue = null
			}

			res, err := stats.TestMean(sum, d, nullValue)
			if err != nil {
				return err
			}

			printMethod(d, sum.N)
			printMetrics(
				metric{"Null Value", fmt.Sprintf("%.2f", res.NullValue)},
				metric{"Test Statistic", fmt.Sprintf("%.4f", res.Statistic)},
				metric{"P-Value", fmt.Sprintf("%.4f", res.PValue)},
			)

			if res.Significant {
				color.Red("Significant result (p = %.4f <= %.2f). Reject H0.", res.PValue, stats.Alpha)
			} else {
				color.Yellow("Not significant (p = %.4f > %.2f). Fail to reject H0.", res.PValue, stats.Alpha)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&null, "null", 0, "null hypothesis value (default: sample mean)")
	return cmd
}

func planCmd() *cobra.Command {
	var flags sampleFlags
	var target float64
	var svgOut string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the sample size for a target margin of error",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := flags.resolve()
			if err != nil {
				return err
			}
			d, err := stats.ChooseDist(sum.N, flags.confidence)
			if err != nil {
				return err
			}
			plan, err := stats.PlanSampleSize(d, sum.StdDev, sum.N, target)
			if err != nil {
				return err
			}

			printMethod(d, sum.N)
			printMetrics(
				metric{"Current Margin", fmt.Sprintf("±%.3f", d.Critical*sum.StdErr())},
				metric{"Target Margin", fmt.Sprintf("±%.3f", plan.TargetMargin)},
				metric{"Required n", fmt.Sprintf("%d", plan.RequiredN)},
			)

			if plan.Deficit > 0 {
				color.Yellow("Collect %d more observation(s) to reach the target precision", plan.Deficit)
			} else {
				color.Green("The current sample of %d already meets the target", sum.N)
			}

			curve := stats.MarginCurve(d, sum.StdDev, sum.N)
			printCurve(curve)

			if svgOut != "" {
				points := make([]svg.Point, len(curve))
				for i, p := range curve {
					points[i] = svg.Point{X: float64(p.N), Y: p.Margin}
				}
				chart := svg.LineChart(points, "Margin of Error vs Sample Size", "sample size (n)", "margin of error")
				if err := os.WriteFile(svgOut, chart, 0o644); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
				color.Green("Wrote %s (%d bytes)", svgOut, len(chart))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&target, "target", 1, "target margin of error (> 0)")
	cmd.Flags().StringVarP(&svgOut, "output", "o", "", "write the margin curve as SVG to this file")
	return cmd
}

func regressCmd() *cobra.Command {
	var xText, yText, svgOut string
	var predictAt float64

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Fit a least-squares line to paired samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := stats.ParseSample(xText)
			if err != nil {
				return err
			}
			y, err := stats.ParseSample(yText)
			if err != nil {
				return err
			}

			fit, residuals, err := stats.FitLinear(x, y)
			if err != nil {
				return err
			}

			printMetrics(
				metric{"Slope", fmt.Sprintf("%.4f", fit.Slope)},
				metric{"Intercept", fmt.Sprintf("%.4f", fit.Intercept)},
				metric{"Correlation r", fmt.Sprintf("%.4f", fit.R)},
				metric{"R-squared", fmt.Sprintf("%.4f", fit.RSquared)},
				metric{"Slope Std Err", fmt.Sprintf("%.4f", fit.SlopeStdErr)},
				metric{"P-Value (slope)", fmt.Sprintf("%.4f", fit.PValue)},
			)

			if cmd.Flags().Changed("predict") {
				color.Green("Predicted y at x=%.4g: %.4f", predictAt, fit.Predict(predictAt))
			}

			if svgOut != "" {
				points := make([]svg.Point, len(residuals))
				for i, r := range residuals {
					points[i] = svg.Point{X: x[i], Y: r}
				}
				chart := svg.ScatterChart(points, "Residuals", "x", "residual")
				if err := os.WriteFile(svgOut, chart, 0o644); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
				color.Green("Wrote %s (%d bytes)", svgOut, len(chart))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xText, "x", "", "x values as comma-separated list (required)")
	cmd.Flags().StringVar(&yText, "y", "", "y values as comma-separated list (required)")
	cmd.Flags().Float64Var(&predictAt, "predict", 0, "predict y at this x value")
	cmd.Flags().StringVarP(&svgOut, "output", "o", "", "write the residual plot as SVG to this file")

	for _, name := range []string{"x", "y"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	return cmd
}

func serveCmd() *cobra.Command {
	var port int
	var open bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := fmt.Sprintf(":%d", port)
			server := web.NewServer(addr)
			return server.Start(open)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().BoolVar(&open, "open", false, "open browser automatically")

	return cmd
}

type metric struct {
	label string
	value string
}

func printMethod(d stats.Dist, n int) {
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Printf("Methodology: %s based on sample size n=%d\n", d.Label(), n)
}

func printMetrics(metrics ...metric) {
	dim := color.New(color.Faint)
	_, _ = dim.Println(strings.Repeat("-", 40))
	for _, m := range metrics {
		fmt.Printf("%-18s %s\n", m.label, m.value)
	}
	_, _ = dim.Println(strings.Repeat("-", 40))
}

// printCurve draws the precision-vs-size relationship as a bar chart,
// one row per sample size step.
func printCurve(curve []stats.CurvePoint) {
	if len(curve) == 0 {
		return
	}

	cyan := color.New(color.FgCyan)
	_, _ = cyan.Printf("\n%-6s %10s  %s\n", "n", "margin", "")

	maxMargin := curve[0].Margin
	step := len(curve) / 12
	if step < 1 {
		step = 1
	}

	for i := 0; i < len(curve); i += step {
		p := curve[i]
		barLen := 0
		if maxMargin > 0 {
			barLen = int(math.Round(p.Margin / maxMargin * 24))
		}
		if barLen > 24 {
			barLen = 24
		}
		bar := strings.Repeat("█", barLen) + strings.Repeat("░", 24-barLen)
		fmt.Printf("%-6d %10.4f  %s\n", p.N, p.Margin, bar)
	}
}
