package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"statlab/internal/stats"
	"statlab/internal/svg"
)

const defaultConfidence = 0.95

// summaryRequest carries either raw delimited sample text or directly
// entered summary statistics, the way the input form collects them.
type summaryRequest struct {
	Data       string  `json:"data,omitempty"`
	Mean       float64 `json:"mean,omitempty"`
	StdDev     float64 `json:"std_dev,omitempty"`
	N          int     `json:"n,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

func (req *summaryRequest) resolve() (stats.SampleSummary, float64, error) {
	confidence := req.Confidence
	if confidence == 0 {
		confidence = defaultConfidence
	}

	if req.Data != "" {
		values, err := stats.ParseSample(req.Data)
		if err != nil {
			return stats.SampleSummary{}, 0, err
		}
		sum, err := stats.Summarize(values)
		return sum, confidence, err
	}

	sum, err := stats.NewSummary(req.Mean, req.StdDev, req.N)
	return sum, confidence, err
}

func (s *Server) handleInterval(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	sum, confidence, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := stats.ChooseDist(sum.N, confidence)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := stats.Interval(sum, d)
	if err != nil {
		writeError(w, err)
		return
	}

	type intervalResponse struct {
		Method        string  `json:"method"`
		Mean          float64 `json:"mean"`
		StdDev        float64 `json:"std_dev"`
		N             int     `json:"n"`
		Confidence    float64 `json:"confidence"`
		CriticalValue float64 `json:"critical_value"`
		StandardError float64 `json:"standard_error"`
		MarginOfError float64 `json:"margin_of_error"`
		Lower         float64 `json:"lower"`
		Upper         float64 `json:"upper"`
	}

	writeJSON(w, intervalResponse{
		Method:        d.Label(),
		Mean:          sum.Mean,
		StdDev:        sum.StdDev,
		N:             sum.N,
		Confidence:    confidence,
		CriticalValue: res.Critical,
		StandardError: res.StdErr,
		MarginOfError: res.Margin,
		Lower:         res.Lower,
		Upper:         res.Upper,
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		summaryRequest
		NullValue *float64 `json:"null_value,omitempty"`
	}
	if !decodeRequest(w, r, &req) {
		return
	}

	sum, confidence, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := stats.ChooseDist(sum.N, confidence)
	if err != nil {
		writeError(w, err)
		return
	}

	// The null hypothesis defaults to the sample mean, so an untouched
	// form starts from a trivially non-significant test.
	null := sum.Mean
	if req.NullValue != nil {
		null = *req.NullValue
	}

	res, err := stats.TestMean(sum, d, null)
	if err != nil {
		writeError(w, err)
		return
	}

	type testResponse struct {
		Method      string  `json:"method"`
		NullValue   float64 `json:"null_value"`
		Statistic   float64 `json:"statistic"`
		PValue      float64 `json:"p_value"`
		Alpha       float64 `json:"alpha"`
		Significant bool    `json:"significant"`
	}

	writeJSON(w, testResponse{
		Method:      d.Label(),
		NullValue:   res.NullValue,
		Statistic:   res.Statistic,
		PValue:      res.PValue,
		Alpha:       stats.Alpha,
		Significant: res.Significant,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		summaryRequest
		TargetMargin float64 `json:"target_margin"`
	}
	if !decodeRequest(w, r, &req) {
		return
	}

	sum, confidence, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := stats.ChooseDist(sum.N, confidence)
	if err != nil {
		writeError(w, err)
		return
	}

	plan, err := stats.PlanSampleSize(d, sum.StdDev, sum.N, req.TargetMargin)
	if err != nil {
		writeError(w, err)
		return
	}

	type curvePoint struct {
		N      int     `json:"n"`
		Margin float64 `json:"margin"`
	}

	type planResponse struct {
		StdDev        float64      `json:"std_dev"`
		N             int          `json:"n"`
		Confidence    float64      `json:"confidence"`
		TargetMargin  float64      `json:"target_margin"`
		CurrentMargin float64      `json:"current_margin"`
		RequiredN     int          `json:"required_n"`
		Deficit       int          `json:"deficit"`
		Curve         []curvePoint `json:"curve"`
	}

	var curve []curvePoint
	for _, p := range stats.MarginCurve(d, sum.StdDev, sum.N) {
		curve = append(curve, curvePoint{N: p.N, Margin: p.Margin})
	}

	writeJSON(w, planResponse{
		StdDev:        sum.StdDev,
		N:             sum.N,
		Confidence:    confidence,
		TargetMargin:  plan.TargetMargin,
		CurrentMargin: d.Critical * sum.StdErr(),
		RequiredN:     plan.RequiredN,
		Deficit:       plan.Deficit,
		Curve:         curve,
	})
}

func (s *Server) handleRegression(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X         string   `json:"x"`
		Y         string   `json:"y"`
		PredictAt *float64 `json:"predict_at,omitempty"`
	}
	if !decodeRequest(w, r, &req) {
		return
	}

	x, err := stats.ParseSample(req.X)
	if err != nil {
		writeError(w, err)
		return
	}
	y, err := stats.ParseSample(req.Y)
	if err != nil {
		writeError(w, err)
		return
	}

	fit, residuals, err := stats.FitLinear(x, y)
	if err != nil {
		writeError(w, err)
		return
	}

	type residualPoint struct {
		X        float64 `json:"x"`
		Residual float64 `json:"residual"`
	}

	type regressionResponse struct {
		Slope       float64         `json:"slope"`
		Intercept   float64         `json:"intercept"`
		R           float64         `json:"r"`
		RSquared    float64         `json:"r_squared"`
		PValue      float64         `json:"p_value"`
		SlopeStdErr float64         `json:"slope_std_err"`
		N           int             `json:"n"`
		Residuals   []residualPoint `json:"residuals"`
		Prediction  *float64        `json:"prediction,omitempty"`
	}

	resp := regressionResponse{
		Slope:       fit.Slope,
		Intercept:   fit.Intercept,
		R:           fit.R,
		RSquared:    fit.RSquared,
		PValue:      fit.PValue,
		SlopeStdErr: fit.SlopeStdErr,
		N:           fit.N,
	}
	for i, res := range residuals {
		resp.Residuals = append(resp.Residuals, residualPoint{X: x[i], Residual: res})
	}
	if req.PredictAt != nil {
		pred := fit.Predict(*req.PredictAt)
		resp.Prediction = &pred
	}

	writeJSON(w, resp)
}

func (s *Server) handleCurveSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stdDev, err := strconv.ParseFloat(q.Get("std_dev"), 64)
	if err != nil {
		http.Error(w, "invalid std_dev", http.StatusBadRequest)
		return
	}
	n, err := strconv.Atoi(q.Get("n"))
	if err != nil {
		http.Error(w, "invalid n", http.StatusBadRequest)
		return
	}
	confidence := defaultConfidence
	if c := q.Get("confidence"); c != "" {
		confidence, err = strconv.ParseFloat(c, 64)
		if err != nil {
			http.Error(w, "invalid confidence", http.StatusBadRequest)
			return
		}
	}

	d, err := stats.ChooseDist(n, confidence)
	if err != nil {
		writeError(w, err)
		return
	}

	var points []svg.Point
	for _, p := range stats.MarginCurve(d, stdDev, n) {
		points = append(points, svg.Point{X: float64(p.N), Y: p.Margin})
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg.LineChart(points, "Margin of Error vs Sample Size", "sample size (n)", "margin of error"))
}

func (s *Server) handleResidualsSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := stats.ParseSample(q.Get("x"))
	if err != nil {
		writeError(w, err)
		return
	}
	y, err := stats.ParseSample(q.Get("y"))
	if err != nil {
		writeError(w, err)
		return
	}

	_, residuals, err := stats.FitLinear(x, y)
	if err != nil {
		writeError(w, err)
		return
	}

	points := make([]svg.Point, len(residuals))
	for i, res := range residuals {
		points[i] = svg.Point{X: x[i], Y: res}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg.ScatterChart(points, "Residuals", "x", "residual"))
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeError surfaces the engine's error kind so the form can show a
// blocking message instead of partial results.
func writeError(w http.ResponseWriter, err error) {
	kind := "internal_error"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, stats.ErrParse):
		kind, status = "parse_error", http.StatusBadRequest
	case errors.Is(err, stats.ErrDomain):
		kind, status = "domain_error", http.StatusBadRequest
	case errors.Is(err, stats.ErrShapeMismatch):
		kind, status = "shape_mismatch", http.StatusBadRequest
	case errors.Is(err, stats.ErrInsufficientData):
		kind, status = "insufficient_data", http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   kind,
		"message": err.Error(),
	})
}
