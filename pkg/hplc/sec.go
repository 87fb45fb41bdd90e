// Package hplc provides SEC calibration, UV concentration and HPLC-SAXS schedule calculations
package hplc

import (
	"math"
	"sort"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

// FWHMPerSigma converts a Gaussian FWHM to its standard deviation
const FWHMPerSigma = 2.355

// Column is a SEC calibration Ve = A + B·ln(MW), Ve in mL.
type Column struct {
	PoreSize int // Å
	A        float64
	B        float64
}

// columns is the fixed calibration table, keyed by pore size in Å.
var columns = map[int]Column{
	100: {PoreSize: 100, A: 30.6, B: -1.87},
	150: {PoreSize: 150, A: 35.2, B: -2.12},
	300: {PoreSize: 300, A: 41.0, B: -2.39},
}

// DefaultPoreSize is used for pore sizes missing from the table
const DefaultPoreSize = 100

// ColumnFor returns the calibration for poreSize, falling back to DefaultPoreSize.
func ColumnFor(poreSize int) Column {
	if c, ok := columns[poreSize]; ok {
		return c
	}
	return columns[DefaultPoreSize]
}

// Columns lists the calibration table by pore size.
func Columns() []Column {
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PoreSize < out[j].PoreSize })
	return out
}

// ElutionVolume returns Ve (mL) for a molecular weight (Da).
func (c Column) ElutionVolume(mw float64) float64 {
	return c.A + c.B*math.Log(mw)
}

// MolecularWeight inverts ElutionVolume.
func (c Column) MolecularWeight(ve float64) float64 {
	return math.Exp((ve - c.A) / c.B)
}

// CalculateRetentionTimeFromMW returns the retention time (min) at flowRate (mL/min).
func CalculateRetentionTimeFromMW(mw float64, poreSize int, flowRate float64) (float64, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "molecular weight", Value: mw},
		core.Param{Name: "flow rate", Value: flowRate},
	); err != nil {
		return 0, err
	}
	return ColumnFor(poreSize).ElutionVolume(mw) / flowRate, nil
}

// CalculateMWFromRetentionTime recovers a molecular weight from a retention time (min).
func CalculateMWFromRetentionTime(rt float64, poreSize int, flowRate float64) (float64, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "retention time", Value: rt},
		core.Param{Name: "flow rate", Value: flowRate},
	); err != nil {
		return 0, err
	}
	return ColumnFor(poreSize).MolecularWeight(rt * flowRate), nil
}

// CalculateMassResolution estimates ΔM ≈ |width·flow/B|·MW for a peak of width minutes.
func CalculateMassResolution(mw, peakWidth float64, poreSize int, flowRate float64) (float64, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "molecular weight", Value: mw},
		core.Param{Name: "peak width", Value: peakWidth},
		core.Param{Name: "flow rate", Value: flowRate},
	); err != nil {
		return 0, err
	}
	col := ColumnFor(poreSize)
	return math.Abs(peakWidth*flowRate/col.B) * mw, nil
}

// Dilution is the on-column dilution of an injected sample.
type Dilution struct {
	PeakVolume     float64 // µL
	DilutionFactor float64
}

// CalculateDilution converts a Gaussian peak FWHM (min) at flowRate (mL/min) into
// a peak volume and compares it to the injected volume (µL).
func CalculateDilution(flowRate, peakWidth, injectedVolume float64) (*Dilution, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "flow rate", Value: flowRate},
		core.Param{Name: "peak width", Value: peakWidth},
		core.Param{Name: "injection volume", Value: injectedVolume},
	); err != nil {
		return nil, err
	}
	volume := flowRate * peakWidth * math.Sqrt(2*math.Pi) / FWHMPerSigma * 1000
	return &Dilution{
		PeakVolume:     volume,
		DilutionFactor: volume / injectedVolume,
	}, nil
}

// UVConcentration is a Beer-Lambert concentration.
type UVConcentration struct {
	Molar   float64 // M
	MgPerML float64
}

// CalculateUVConcentration applies c = A/(ε·l) with ε in M⁻¹cm⁻¹ and l in cm.
func CalculateUVConcentration(absorbance, extinction, pathLength, mw float64) (*UVConcentration, error) {
	if err := core.RequireFinite("absorbance", absorbance); err != nil {
		return nil, err
	}
	if err := core.RequireAllPositive(
		core.Param{Name: "extinction coefficient", Value: extinction},
		core.Param{Name: "path length", Value: pathLength},
		core.Param{Name: "molecular weight", Value: mw},
	); err != nil {
		return nil, err
	}
	molar := absorbance / (extinction * pathLength)
	return &UVConcentration{
		Molar:   molar,
		MgPerML: molar * mw / 1000,
	}, nil
}
