// Package plot renders analysis results with gonum/plot
package plot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

// Size is the side length of saved plots
const Size = 5 * vg.Inch

var supportedExt = map[string]bool{
	".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true,
}

// Guinier builds a ln I vs q² plot of the fitted points with the regression line
func Guinier(fit *saxs.GuinierFit, title string) (*plot.Plot, error) {
	if fit == nil || len(fit.X) == 0 {
		return nil, fmt.Errorf("no fitted points to plot")
	}

	p := plot.New()
	if title == "" {
		title = "Guinier plot"
	}
	p.Title.Text = title
	p.X.Label.Text = "q² (Å⁻²)"
	p.Y.Label.Text = "ln I(q)"

	pts := make(plotter.XYs, len(fit.X))
	for i := range fit.X {
		pts[i].X = fit.X[i]
		pts[i].Y = fit.Y[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	line, err := plotter.NewLine(fitLine(fit))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(s, line, plotter.NewGrid())
	p.Legend.Add("data", s)
	p.Legend.Add(fmt.Sprintf("fit Rg=%.2f Å, I0=%.4g", fit.Rg, fit.I0), line)
	p.Legend.Top = true

	return p, nil
}

// fitLine spans the fitted q² range with the model intensity
func fitLine(fit *saxs.GuinierFit) plotter.XYs {
	xmin, xmax := fit.X[0], fit.X[0]
	for _, x := range fit.X {
		xmin = min(xmin, x)
		xmax = max(xmax, x)
	}
	return plotter.XYs{
		{X: xmin, Y: math.Log(fit.Predict(math.Sqrt(xmin)))},
		{X: xmax, Y: math.Log(fit.Predict(math.Sqrt(xmax)))},
	}
}

// SaveGuinier renders a Guinier plot to filename. The format follows the extension.
func SaveGuinier(fit *saxs.GuinierFit, title, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExt[ext] {
		return fmt.Errorf("unsupported plot format %q", ext)
	}

	p, err := Guinier(fit, title)
	if err != nil {
		return err
	}
	if err := p.Save(Size, Size, filename); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
