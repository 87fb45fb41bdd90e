package saxs

import (
	"fmt"
	"math"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

// Reference protein anchoring the detector-distance model (BSA monomer).
const (
	RefMolecularWeight = 66500.0 // Da
	RefRg              = 28.0    // Å
	RefDistance        = 1900.0  // mm
	RefQMin            = 0.008   // Å⁻¹
)

// Coefficients derived from the single reference point
var (
	rgCoefficient       = RefRg / math.Cbrt(RefMolecularWeight) // Rg = k·MW^(1/3)
	qminCoefficient     = RefQMin * RefRg                       // qmin = c1/Rg
	distanceCoefficient = RefDistance / RefRg                   // SD = c2·Rg
)

// InputKind says whether a detector-distance input is a molecular weight or an Rg.
type InputKind int

const (
	InputMW InputKind = iota
	InputRg
)

// ParseInputKind accepts "mw" or "rg".
func ParseInputKind(s string) (InputKind, error) {
	switch s {
	case "mw":
		return InputMW, nil
	case "rg":
		return InputRg, nil
	default:
		return 0, fmt.Errorf("unknown input type %q, must be mw or rg", s)
	}
}

// DetectorDistance is a recommended sample-detector setup.
type DetectorDistance struct {
	MolecularWeight   float64 // Da
	Rg                float64 // Å
	QMin              float64 // Å⁻¹
	SuggestedDistance float64 // mm
}

// CalculateDetectorDistance scales the reference point to value, read as a
// molecular weight or an Rg according to kind.
func CalculateDetectorDistance(value float64, kind InputKind) (*DetectorDistance, error) {
	if err := core.RequirePositive("value", value); err != nil {
		return nil, err
	}

	var mw, rg float64
	switch kind {
	case InputRg:
		rg = value
		mw = math.Pow(rg/rgCoefficient, 3)
	default:
		mw = value
		rg = rgCoefficient * math.Cbrt(mw)
	}

	return &DetectorDistance{
		MolecularWeight:   mw,
		Rg:                rg,
		QMin:              qminCoefficient / rg,
		SuggestedDistance: distanceCoefficient * rg,
	}, nil
}
