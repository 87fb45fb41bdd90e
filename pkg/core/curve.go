package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Curve is a one-dimensional scattering profile I(q).
type Curve struct {
	Points []Point

	// Optional metadata
	Title      string
	SourceFile string
}

// Point is a single q, intensity pair with optional error.
type Point struct {
	Q         float64 // Å⁻¹
	Intensity float64
	Sigma     float64 // 0 when the file has no error column
}

// Validate checks that a curve can be handed to the analysis routines.
func (c *Curve) Validate() error {
	var errs []string

	if len(c.Points) == 0 {
		errs = append(errs, "at least one point is required")
	}
	for i, p := range c.Points {
		if math.IsNaN(p.Q) || math.IsInf(p.Q, 0) {
			errs = append(errs, fmt.Sprintf("point %d has invalid q", i))
		}
		if math.IsNaN(p.Intensity) || math.IsInf(p.Intensity, 0) {
			errs = append(errs, fmt.Sprintf("point %d has invalid intensity", i))
		}
		if p.Q < 0 {
			errs = append(errs, fmt.Sprintf("point %d q must be non-negative", i))
		}
	}
	if !c.IsSorted() {
		errs = append(errs, "points must be sorted by q")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid curve %s: %s", c.Name(), strings.Join(errs, "; "))
	}
	return nil
}

// IsSorted checks if points are sorted by q in ascending order.
func (c *Curve) IsSorted() bool {
	for i := 1; i < len(c.Points); i++ {
		if c.Points[i].Q < c.Points[i-1].Q {
			return false
		}
	}
	return true
}

// Sort sorts points by q in ascending order.
func (c *Curve) Sort() {
	sort.SliceStable(c.Points, func(i, j int) bool {
		return c.Points[i].Q < c.Points[j].Q
	})
}

// Columns returns the q and intensity columns as parallel slices.
func (c *Curve) Columns() (q, intensity []float64) {
	q = make([]float64, len(c.Points))
	intensity = make([]float64, len(c.Points))
	for i, p := range c.Points {
		q[i] = p.Q
		intensity[i] = p.Intensity
	}
	return q, intensity
}

// Name returns the title, or the source file when there is none.
func (c *Curve) Name() string {
	if c.Title != "" {
		return c.Title
	}
	if c.SourceFile != "" {
		return c.SourceFile
	}
	return "curve"
}
