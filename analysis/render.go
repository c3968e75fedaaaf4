package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot rendering is pure: every renderer builds its own plot from the data it
// is given and encodes it to an in-memory PNG, with no shared drawing surface
// between calls.

var trendColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}

// encodePlot renders a plot to PNG and returns it base64-encoded.
func encodePlot(p *plot.Plot) (string, error) {
	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// renderPredictedVsActual draws a scatter of test predictions against actual
// values with a fitted trend line.
func renderPredictedVsActual(pred, actual []float64) (string, error) {
	p := plot.New()
	p.Title.Text = "Predicted vs Actual"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	scatter, err := plotter.NewScatter(toXYs(pred, actual))
	if err != nil {
		return "", err
	}
	p.Add(scatter)

	// Trend line: simple regression of actual on predicted.
	intercept, slope := stat.LinearRegression(pred, actual, nil, false)
	minX, maxX := minMax(pred)
	trend, err := plotter.NewLine(plotter.XYs{
		{X: minX, Y: intercept + slope*minX},
		{X: maxX, Y: intercept + slope*maxX},
	})
	if err != nil {
		return "", err
	}
	trend.Color = trendColor
	trend.Width = vg.Points(2)
	p.Add(trend)

	return encodePlot(p)
}

// renderResiduals draws a scatter of residuals against predictions with a
// zero reference line and a moving-average trend line.
func renderResiduals(pred, resid []float64) (string, error) {
	p := plot.New()
	p.Title.Text = "Residuals vs Predicted"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Residuals"

	scatter, err := plotter.NewScatter(toXYs(pred, resid))
	if err != nil {
		return "", err
	}
	p.Add(scatter)

	minX, maxX := minMax(pred)
	zero, err := plotter.NewLine(plotter.XYs{{X: minX, Y: 0}, {X: maxX, Y: 0}})
	if err != nil {
		return "", err
	}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	smooth, err := plotter.NewLine(movingAverage(pred, resid))
	if err != nil {
		return "", err
	}
	smooth.Color = trendColor
	smooth.Width = vg.Points(2)
	p.Add(smooth)

	return encodePlot(p)
}

// renderQQ draws a quantile-quantile plot of the residuals against a normal
// distribution, with a standardized reference line.
func renderQQ(resid []float64) (string, error) {
	p := plot.New()
	p.Title.Text = "Q-Q Plot of Residuals"
	p.X.Label.Text = "Theoretical Quantiles"
	p.Y.Label.Text = "Sample Quantiles"

	n := len(resid)
	sorted := append([]float64(nil), resid...)
	sort.Float64s(sorted)

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = normal.Quantile((float64(i) + 0.5) / float64(n))
		pts[i].Y = sorted[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", err
	}
	p.Add(scatter)

	// Reference line through the residuals' mean and standard deviation.
	mean := stat.Mean(resid, nil)
	std := stat.StdDev(resid, nil)
	minQ, maxQ := pts[0].X, pts[n-1].X
	ref, err := plotter.NewLine(plotter.XYs{
		{X: minQ, Y: mean + std*minQ},
		{X: maxQ, Y: mean + std*maxQ},
	})
	if err != nil {
		return "", err
	}
	ref.Color = trendColor
	ref.Width = vg.Points(2)
	p.Add(ref)

	return encodePlot(p)
}

// renderCoefficientBars draws a horizontal bar chart of coefficient values,
// sorted ascending.
func renderCoefficientBars(coefs []float64) (string, error) {
	type coefEntry struct {
		label string
		value float64
	}
	entries := make([]coefEntry, len(coefs))
	for i, w := range coefs {
		entries[i] = coefEntry{label: fmt.Sprintf("Feature_%d", i), value: w}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value < entries[j].value })

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.value
		labels[i] = e.label
	}

	p := plot.New()
	p.Title.Text = "Feature Coefficients"
	p.X.Label.Text = "Coefficient"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return "", err
	}
	bars.Horizontal = true
	p.Add(bars)
	p.NominalY(labels...)

	return encodePlot(p)
}

// renderImportanceBars draws a horizontal bar chart of an importance ranking,
// most important at the top.
func renderImportanceBars(title string, entries []ImportanceEntry) (string, error) {
	// NominalY labels bottom-up, so reverse to put the top-ranked feature
	// at the top of the chart.
	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		k := len(entries) - 1 - i
		values[k] = e.Importance
		labels[k] = e.Feature
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Importance"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return "", err
	}
	bars.Horizontal = true
	p.Add(bars)
	p.NominalY(labels...)

	return encodePlot(p)
}

// renderRegularizationPath draws each coefficient's trajectory against the
// regularization strength on a reversed log-scaled axis.
func renderRegularizationPath(family string, alphas []float64, coefRows [][]float64) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Regularization Path", titleCase(family))
	p.X.Label.Text = "Alpha (regularization strength)"
	p.Y.Label.Text = "Coefficients"
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LogScale{}}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	nCoefs := len(coefRows[0])
	for j := 0; j < nCoefs; j++ {
		pts := make(plotter.XYs, len(alphas))
		for i := range alphas {
			pts[i].X = alphas[i]
			pts[i].Y = coefRows[i][j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.Color = plotutil.Color(j)
		p.Add(line)
	}

	return encodePlot(p)
}

func toXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func minMax(xs []float64) (min, max float64) {
	min, max = xs[0], xs[0]
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// movingAverage returns a local trend through (x, y), sorted by x and
// smoothed with a centered window.
func movingAverage(xs, ys []float64) plotter.XYs {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	window := n / 10
	if window < 5 {
		window = 5
	}
	if window > n {
		window = n
	}
	half := window / 2

	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > n {
			hi = n
		}
		var sum float64
		for k := lo; k < hi; k++ {
			sum += ys[idx[k]]
		}
		pts[i].X = xs[idx[i]]
		pts[i].Y = sum / float64(hi-lo)
	}
	return pts
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
