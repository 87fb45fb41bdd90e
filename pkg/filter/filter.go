// Package filter provides point selection for scattering curves
package filter

import (
	"math"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

// Window selects points with QMin <= q <= QMax and positive intensity
type Window struct {
	QMin float64 // 0 = from the first point
	QMax float64 // 0 or +Inf = to the last point
}

// Contains reports whether a q value lies inside the window
func (w Window) Contains(q float64) bool {
	qmax := w.QMax
	if qmax <= 0 {
		qmax = math.Inf(1)
	}
	return q >= w.QMin && q <= qmax
}

// Select pairs q and intensity by index and returns the qualifying points.
// Pairing stops at the shorter slice.
func (w Window) Select(q, intensity []float64) []core.Point {
	n := len(q)
	if len(intensity) < n {
		n = len(intensity)
	}

	var selected []core.Point
	for i := 0; i < n; i++ {
		if !w.Contains(q[i]) {
			continue
		}
		if !(intensity[i] > 0) {
			continue
		}
		selected = append(selected, core.Point{Q: q[i], Intensity: intensity[i]})
	}
	return selected
}

// Apply restricts a curve to the window in place
func (w Window) Apply(c *core.Curve) {
	var filtered []core.Point
	for _, p := range c.Points {
		if w.Contains(p.Q) && p.Intensity > 0 {
			filtered = append(filtered, p)
		}
	}
	c.Points = filtered
}

// RemoveNonPositive removes points with zero or negative intensity
func RemoveNonPositive(c *core.Curve) {
	var filtered []core.Point
	for _, p := range c.Points {
		if p.Intensity > 0 {
			filtered = append(filtered, p)
		}
	}
	c.Points = filtered
}

// Range returns the smallest and largest q of a curve
func Range(c *core.Curve) (qmin, qmax float64) {
	if len(c.Points) == 0 {
		return 0, 0
	}
	qmin, qmax = math.Inf(1), math.Inf(-1)
	for _, p := range c.Points {
		qmin = math.Min(qmin, p.Q)
		qmax = math.Max(qmax, p.Q)
	}
	return qmin, qmax
}
