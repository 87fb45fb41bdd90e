// Package saxs provides Guinier analysis and theoretical scattering parameter estimates
package saxs

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
	"github.com/ChrisMcGann/SAXSKey/pkg/filter"
)

const (
	// MinGuinierPoints is the smallest number of points a fit accepts
	MinGuinierPoints = 3
	// GuinierLimit is the conventional upper bound of q·Rg for globular particles
	GuinierLimit = 1.3
)

// GuinierFit is the result of a linear fit of ln I against q².
type GuinierFit struct {
	I0        float64
	Rg        float64 // Å
	Slope     float64
	Intercept float64
	RSquared  float64
	Points    int

	QMin, QMax     float64 // q range of the fitted points
	QMinRg, QMaxRg float64
	WithinGuinier  bool // QMaxRg <= GuinierLimit

	X, Y []float64 // q², ln I of the fitted points
}

// GuinierAnalysis fits ln I = ln I(0) - Rg²q²/3 over points with qMin <= q <= qMax
// and positive intensity. qMax <= 0 or +Inf leaves the window open at the top.
func GuinierAnalysis(q, intensity []float64, qMin, qMax float64) (*GuinierFit, error) {
	points := filter.Window{QMin: qMin, QMax: qMax}.Select(q, intensity)
	if len(points) < MinGuinierPoints {
		return nil, &core.InsufficientDataError{Points: len(points), Required: MinGuinierPoints}
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.Q * p.Q
		y[i] = math.Log(p.Intensity)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return nil, &core.DomainError{Quantity: "slope", Value: slope, Message: "points are degenerate in q"}
	}
	if slope >= 0 {
		return nil, &core.DomainError{Quantity: "Rg", Value: slope, Message: "Guinier slope must be negative"}
	}

	fit := &GuinierFit{
		I0:        math.Exp(intercept),
		Rg:        math.Sqrt(-3 * slope),
		Slope:     slope,
		Intercept: intercept,
		RSquared:  stat.RSquared(x, y, nil, intercept, slope),
		Points:    len(points),
		QMin:      points[0].Q,
		QMax:      points[0].Q,
		X:         x,
		Y:         y,
	}
	for _, p := range points {
		fit.QMin = math.Min(fit.QMin, p.Q)
		fit.QMax = math.Max(fit.QMax, p.Q)
	}
	fit.QMinRg = fit.QMin * fit.Rg
	fit.QMaxRg = fit.QMax * fit.Rg
	fit.WithinGuinier = fit.QMaxRg <= GuinierLimit

	return fit, nil
}

// GuinierCurve runs GuinierAnalysis over a parsed curve.
func GuinierCurve(c *core.Curve, qMin, qMax float64) (*GuinierFit, error) {
	q, intensity := c.Columns()
	return GuinierAnalysis(q, intensity, qMin, qMax)
}

// Predict returns the fitted intensity at q.
func (g *GuinierFit) Predict(q float64) float64 {
	return math.Exp(g.Intercept + g.Slope*q*q)
}
