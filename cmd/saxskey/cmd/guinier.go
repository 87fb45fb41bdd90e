package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
	"github.com/ChrisMcGann/SAXSKey/pkg/filter"
	"github.com/ChrisMcGann/SAXSKey/pkg/plot"
	"github.com/ChrisMcGann/SAXSKey/pkg/reader/curve"
	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

var (
	// Flags for guinier command
	curveFile  string
	guinierMin float64
	guinierMax float64
	plotFile   string
)

var guinierCmd = &cobra.Command{
	Use:   "guinier",
	Short: "Fit ln I(q) against q² over a q window",
	Long: `Perform Guinier analysis on a scattering curve. The input is a text file
with columns q, I and optionally sigma; .zst files are decompressed on the fly.

Examples:
  saxskey guinier --in bsa.dat --qmin 0.01 --qmax 0.04
  saxskey guinier --in bsa.dat.zst --qmax 0.04 --plot bsa_guinier.png --db report.db`,
	RunE: runGuinier,
}

func init() {
	guinierCmd.Flags().StringVarP(&curveFile, "in", "i", "", "Scattering curve file (required)")
	guinierCmd.Flags().Float64Var(&guinierMin, "qmin", 0, "Lower q bound (Å⁻¹)")
	guinierCmd.Flags().Float64Var(&guinierMax, "qmax", 0, "Upper q bound (Å⁻¹, 0 = no bound)")
	guinierCmd.Flags().StringVar(&plotFile, "plot", "", "Write a Guinier plot (.png, .svg or .pdf)")
	guinierCmd.MarkFlagRequired("in")
}

func runGuinier(cmd *cobra.Command, args []string) error {
	c, err := curve.ReadFile(curveFile)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", c.Name(), err)
	}

	lo, hi := filter.Range(c)
	slog.Debug("curve loaded", "file", curveFile, "points", len(c.Points), "qmin", lo, "qmax", hi)

	window := filter.Window{QMin: guinierMin, QMax: guinierMax}
	if dropped := prepareCurve(c, window); dropped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %s: dropped %d points with non-positive intensity\n", c.Name(), dropped)
	}
	slog.Debug("guinier window", "qmin", window.QMin, "qmax", window.QMax, "points", len(c.Points))

	fit, err := saxs.GuinierCurve(c, guinierMin, guinierMax)
	if err != nil {
		return err
	}
	slog.Debug("guinier fit", "slope", fit.Slope, "intercept", fit.Intercept, "points", fit.Points)

	fmt.Printf("Curve:      %s\n", c.Name())
	fmt.Printf("Points:     %d (q %.4f - %.4f Å⁻¹)\n", fit.Points, fit.QMin, fit.QMax)
	fmt.Printf("I(0):       %.6g\n", fit.I0)
	fmt.Printf("Rg:         %.2f Å\n", fit.Rg)
	fmt.Printf("R²:         %.5f\n", fit.RSquared)
	fmt.Printf("q·Rg range: %.3f - %.3f\n", fit.QMinRg, fit.QMaxRg)
	if !fit.WithinGuinier {
		fmt.Fprintf(os.Stderr, "Warning: qmax·Rg = %.2f exceeds %.1f, lower --qmax\n", fit.QMaxRg, saxs.GuinierLimit)
	}

	if plotFile != "" {
		if err := plot.SaveGuinier(fit, c.Name(), plotFile); err != nil {
			return err
		}
		fmt.Printf("Plot:       %s\n", plotFile)
	}

	s := newSession()
	s.SetGuinier(fit, c.Name())
	return saveReport(s)
}

// prepareCurve removes points with non-positive intensity, then restricts c
// to the fit window. It returns the number of non-positive points removed.
func prepareCurve(c *core.Curve, w filter.Window) int {
	n := len(c.Points)
	filter.RemoveNonPositive(c)
	dropped := n - len(c.Points)
	w.Apply(c)
	return dropped
}
