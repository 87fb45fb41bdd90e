package saxs

import (
	"math"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

// Empirical scaling constants
const (
	// I(0) per unit concentration (mg/mL) and molecular weight (Da), cm⁻¹
	I0PerMassConc = 7.8e-6
	// Default protein partial specific volume, cm³/g
	DefaultPartialSpecificVolume = 0.73
	// Dry volume per Dalton, Å³/Da
	DryVolumePerDalton = 1.212
	// Coefficient of the cube-root Rg predictor, Å/Da^(1/3)
	PredictedRgCoefficient = 0.6543

	// Contrast chain constants
	electronsPerDalton      = 0.5377           // average protein electrons per Da
	waterElectronDensity    = 0.334            // e/Å³
	classicalElectronRadius = 2.8179403262e-13 // cm
)

// ProteinType selects an Rg power law.
type ProteinType int

const (
	Globular ProteinType = iota
	Unfolded
	IDP
)

// ParseProteinType maps a name to a ProteinType; unknown names are Globular.
func ParseProteinType(s string) ProteinType {
	switch s {
	case "unfolded":
		return Unfolded
	case "idp":
		return IDP
	default:
		return Globular
	}
}

func (t ProteinType) String() string {
	switch t {
	case Unfolded:
		return "unfolded"
	case IDP:
		return "idp"
	default:
		return "globular"
	}
}

type powerLaw struct {
	prefactor, exponent float64
}

var rgLaws = map[ProteinType]powerLaw{
	Globular: {0.77, 0.37},
	Unfolded: {2.54, 0.522},
	IDP:      {2.49, 0.509},
}

// Shape selects a Dmax/Rg ratio.
type Shape int

const (
	ShapeGlobular Shape = iota
	ShapeSphere
	ShapeElongated
)

// ParseShape maps a name to a Shape; unknown names are ShapeGlobular.
func ParseShape(s string) Shape {
	switch s {
	case "sphere":
		return ShapeSphere
	case "elongated":
		return ShapeElongated
	default:
		return ShapeGlobular
	}
}

func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeElongated:
		return "elongated"
	default:
		return "globular"
	}
}

type dmaxRatio struct {
	factor, min, max float64
}

var dmaxRatios = map[Shape]dmaxRatio{
	ShapeSphere:    {2.58, 2.5, 2.7},
	ShapeGlobular:  {2.8, 2.6, 3.0},
	ShapeElongated: {3.5, 3.0, 5.0},
}

// I0Estimate is a theoretical forward scattering intensity.
//
// I0 is always the empirical value c·MW·I0PerMassConc. The contrast fields
// follow the electron-density route for reference only.
type I0Estimate struct {
	I0 float64 // cm⁻¹

	MolecularVolume float64 // Å³ per molecule
	DeltaRho        float64 // e/Å³
	DeltaSLD        float64 // cm⁻²
}

// CalculateTheoreticalI0 estimates I(0) from molecular weight (Da) and concentration (mg/mL).
// vbar <= 0 uses DefaultPartialSpecificVolume.
func CalculateTheoreticalI0(mw, concentration, vbar float64) (*I0Estimate, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "molecular weight", Value: mw},
		core.Param{Name: "concentration", Value: concentration},
	); err != nil {
		return nil, err
	}
	if vbar <= 0 || math.IsNaN(vbar) {
		vbar = DefaultPartialSpecificVolume
	}

	volume := mw * vbar / core.Avogadro * 1e24
	deltaRho := mw*electronsPerDalton/volume - waterElectronDensity

	return &I0Estimate{
		I0:              concentration * mw * I0PerMassConc,
		MolecularVolume: volume,
		DeltaRho:        deltaRho,
		DeltaSLD:        deltaRho * classicalElectronRadius * 1e24,
	}, nil
}

// RgEstimate holds the class-dependent and cube-root Rg predictions.
type RgEstimate struct {
	Type        ProteinType
	Rg          float64 // Å, from the class power law
	PredictedRg float64 // Å, 0.6543·MW^(1/3)
	QMaxGuinier float64 // Å⁻¹, GuinierLimit/Rg
}

// CalculateTheoreticalRg estimates Rg from molecular weight.
func CalculateTheoreticalRg(mw float64, t ProteinType) (*RgEstimate, error) {
	if err := core.RequirePositive("molecular weight", mw); err != nil {
		return nil, err
	}
	law, ok := rgLaws[t]
	if !ok {
		t = Globular
		law = rgLaws[Globular]
	}

	rg := law.prefactor * math.Pow(mw, law.exponent)
	return &RgEstimate{
		Type:        t,
		Rg:          rg,
		PredictedRg: PredictedRgCoefficient * math.Cbrt(mw),
		QMaxGuinier: GuinierLimit / rg,
	}, nil
}

// DmaxEstimate is a shape-dependent maximum dimension.
type DmaxEstimate struct {
	Shape   Shape
	Factor  float64
	Dmax    float64 // Å
	DmaxMin float64
	DmaxMax float64
}

// CalculateTheoreticalDmax scales rg by the ratio for shape.
func CalculateTheoreticalDmax(rg float64, shape Shape) (*DmaxEstimate, error) {
	if err := core.RequirePositive("Rg", rg); err != nil {
		return nil, err
	}
	ratio, ok := dmaxRatios[shape]
	if !ok {
		shape = ShapeGlobular
		ratio = dmaxRatios[ShapeGlobular]
	}

	return &DmaxEstimate{
		Shape:   shape,
		Factor:  ratio.factor,
		Dmax:    ratio.factor * rg,
		DmaxMin: ratio.min * rg,
		DmaxMax: ratio.max * rg,
	}, nil
}

// ShapeFor is the Dmax shape used for a protein type.
func ShapeFor(t ProteinType) Shape {
	if t == Globular {
		return ShapeGlobular
	}
	return ShapeElongated
}

// TheoreticalParams bundles every MW-derived estimate.
type TheoreticalParams struct {
	MolecularWeight float64
	Concentration   float64
	I0              *I0Estimate
	Rg              *RgEstimate
	Dmax            *DmaxEstimate
	DryVolume       float64 // Å³, DryVolumePerDalton·MW
}

// CalculateAllTheoreticalParams composes the I(0), Rg and Dmax estimates.
func CalculateAllTheoreticalParams(mw, concentration float64, t ProteinType) (*TheoreticalParams, error) {
	i0, err := CalculateTheoreticalI0(mw, concentration, DefaultPartialSpecificVolume)
	if err != nil {
		return nil, err
	}
	rg, err := CalculateTheoreticalRg(mw, t)
	if err != nil {
		return nil, err
	}
	dmax, err := CalculateTheoreticalDmax(rg.Rg, ShapeFor(t))
	if err != nil {
		return nil, err
	}

	return &TheoreticalParams{
		MolecularWeight: mw,
		Concentration:   concentration,
		I0:              i0,
		Rg:              rg,
		Dmax:            dmax,
		DryVolume:       DryVolumePerDalton * mw,
	}, nil
}
