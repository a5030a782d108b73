// Package svg renders the engine's already-computed point series as
// standalone SVG documents. Both the CLI and the web frontend consume
// the raw bytes; nothing here recomputes statistics.
package svg

import (
	"bytes"
	"fmt"
	"math"
)

const (
	width    = 640
	height   = 360
	padLeft  = 56
	padBot   = 44
	padTop   = 36
	padRight = 20
)

// Point is a single (x, y) chart coordinate in data space.
type Point struct {
	X float64
	Y float64
}

// LineChart renders points as a connected polyline, suitable for the
// margin-of-error-vs-n curve.
func LineChart(points []Point, title, xLabel, yLabel string) []byte {
	var buf bytes.Buffer
	sc := newScale(points)
	writeFrame(&buf, sc, title, xLabel, yLabel)

	if len(points) > 0 {
		buf.WriteString(`<polyline fill="none" stroke="#4169e1" stroke-width="2" points="`)
		for i, p := range points {
			if i > 0 {
				buf.WriteByte(' ')
			}
			x, y := sc.place(p)
			fmt.Fprintf(&buf, "%.1f,%.1f", x, y)
		}
		buf.WriteString("\"/>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// ScatterChart renders points as individual markers with a reference
// line at y=0, suitable for residual diagnostics.
func ScatterChart(points []Point, title, xLabel, yLabel string) []byte {
	var buf bytes.Buffer
	sc := newScale(points)
	writeFrame(&buf, sc, title, xLabel, yLabel)

	if sc.minY <= 0 && sc.maxY >= 0 {
		_, zeroY := sc.place(Point{X: sc.minX})
		fmt.Fprintf(&buf, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#999" stroke-dasharray="4 3"/>`+"\n",
			padLeft, zeroY, width-padRight, zeroY)
	}

	for _, p := range points {
		x, y := sc.place(p)
		fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="4" fill="#4169e1" fill-opacity="0.8"/>`+"\n", x, y)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type scale struct {
	minX, maxX float64
	minY, maxY float64
}

func newScale(points []Point) scale {
	sc := scale{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
	for _, p := range points {
		sc.minX = math.Min(sc.minX, p.X)
		sc.maxX = math.Max(sc.maxX, p.X)
		sc.minY = math.Min(sc.minY, p.Y)
		sc.maxY = math.Max(sc.maxY, p.Y)
	}
	if len(points) == 0 {
		sc = scale{minX: 0, maxX: 1, minY: 0, maxY: 1}
	}
	// Degenerate ranges still need a nonzero span to divide by.
	if sc.maxX == sc.minX {
		sc.minX, sc.maxX = sc.minX-1, sc.maxX+1
	}
	if sc.maxY == sc.minY {
		sc.minY, sc.maxY = sc.minY-1, sc.maxY+1
	}
	return sc
}

func (s scale) place(p Point) (float64, float64) {
	plotW := float64(width - padLeft - padRight)
	plotH := float64(height - padTop - padBot)
	x := float64(padLeft) + (p.X-s.minX)/(s.maxX-s.minX)*plotW
	y := float64(height-padBot) - (p.Y-s.minY)/(s.maxY-s.minY)*plotH
	return x, y
}

func writeFrame(buf *bytes.Buffer, sc scale, title, xLabel, yLabel string) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(buf, `<rect width="%d" height="%d" fill="white"/>`+"\n", width, height)
	fmt.Fprintf(buf, `<text x="%d" y="22" font-family="sans-serif" font-size="15" font-weight="bold">%s</text>`+"\n",
		padLeft, escape(title))

	// Axes.
	fmt.Fprintf(buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`+"\n",
		padLeft, height-padBot, width-padRight, height-padBot)
	fmt.Fprintf(buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`+"\n",
		padLeft, padTop, padLeft, height-padBot)

	// Extremes of each axis as tick labels.
	fmt.Fprintf(buf, `<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#555">%s</text>`+"\n",
		padLeft, height-padBot+16, formatTick(sc.minX))
	fmt.Fprintf(buf, `<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#555" text-anchor="end">%s</text>`+"\n",
		width-padRight, height-padBot+16, formatTick(sc.maxX))
	fmt.Fprintf(buf, `<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#555" text-anchor="end">%s</text>`+"\n",
		padLeft-6, height-padBot, formatTick(sc.minY))
	fmt.Fprintf(buf, `<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#555" text-anchor="end">%s</text>`+"\n",
		padLeft-6, padTop+10, formatTick(sc.maxY))

	// Axis labels.
	fmt.Fprintf(buf, `<text x="%d" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle">%s</text>`+"\n",
		(padLeft+width-padRight)/2, height-8, escape(xLabel))
	fmt.Fprintf(buf, `<text x="14" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle" transform="rotate(-90 14 %d)">%s</text>`+"\n",
		(padTop+height-padBot)/2, (padTop+height-padBot)/2, escape(yLabel))
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e6 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3g", v)
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
