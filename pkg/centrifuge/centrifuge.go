// Package centrifuge provides RCF and sedimentation calculations
package centrifuge

import (
	"math"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

const (
	// RCF = RCFCoefficient · radius(cm) · rpm²
	RCFCoefficient = 1.118e-5
	// Standard gravity used for sedimentation velocity, m/s²
	Gravity = 9.8
	// Svedberg per second of sedimentation coefficient
	SvedbergPerSecond = 1e13

	DefaultViscosity = 1.002e-3 // Pa·s, water at 20 °C
	DefaultDensity   = 1.0      // g/cm³
)

// CalculateRCF returns the relative centrifugal force (×g) at radius cm.
func CalculateRCF(rpm, radiusCm float64) (float64, error) {
	if err := core.RequireFinite("rpm", rpm); err != nil {
		return 0, err
	}
	if err := core.RequirePositive("radius", radiusCm); err != nil {
		return 0, err
	}
	return RCFCoefficient * radiusCm * rpm * rpm, nil
}

// CalculateRPM inverts CalculateRCF.
func CalculateRPM(rcf, radiusCm float64) (float64, error) {
	if err := core.RequireFinite("rcf", rcf); err != nil {
		return 0, err
	}
	if err := core.RequirePositive("radius", radiusCm); err != nil {
		return 0, err
	}
	if rcf < 0 {
		return 0, &core.DomainError{Quantity: "rpm", Value: rcf, Message: "RCF must be non-negative"}
	}
	return math.Sqrt(rcf / (RCFCoefficient * radiusCm)), nil
}

// StokesRadius estimates the radius (m) of a sphere of molecular weight mw (Da)
// and partial specific volume vbar (cm³/g).
func StokesRadius(mw, vbar float64) (float64, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "molecular weight", Value: mw},
		core.Param{Name: "partial specific volume", Value: vbar},
	); err != nil {
		return 0, err
	}
	volumeCm3 := mw * vbar / core.Avogadro
	return math.Cbrt(3*volumeCm3/(4*math.Pi)) * 1e-2, nil
}

// SedimentationInput describes a particle and solvent for a sedimentation estimate.
type SedimentationInput struct {
	MolecularWeight       float64 // Da
	PartialSpecificVolume float64 // cm³/g
	SolventDensity        float64 // g/cm³
	Viscosity             float64 // Pa·s
	ParticleRadius        float64 // m; 0 = Stokes radius from MW and v̄
}

// Sedimentation is a sedimentation coefficient with its friction term.
type Sedimentation struct {
	FrictionCoefficient float64 // kg/s
	ParticleRadius      float64 // m
	Coefficient         float64 // s
	Svedberg            float64 // S
}

// CalculateSedimentation computes S = M(1 - v̄ρ)·1e-3 / (N_A·6πηr).
func CalculateSedimentation(in SedimentationInput) (*Sedimentation, error) {
	if err := core.RequireAllPositive(
		core.Param{Name: "molecular weight", Value: in.MolecularWeight},
		core.Param{Name: "partial specific volume", Value: in.PartialSpecificVolume},
		core.Param{Name: "solvent density", Value: in.SolventDensity},
		core.Param{Name: "viscosity", Value: in.Viscosity},
	); err != nil {
		return nil, err
	}
	if err := core.RequireFinite("particle radius", in.ParticleRadius); err != nil {
		return nil, err
	}

	radius := in.ParticleRadius
	if radius <= 0 {
		r, err := StokesRadius(in.MolecularWeight, in.PartialSpecificVolume)
		if err != nil {
			return nil, err
		}
		radius = r
	}

	friction := 6 * math.Pi * in.Viscosity * radius
	s := in.MolecularWeight * (1 - in.PartialSpecificVolume*in.SolventDensity) * 1e-3 / (core.Avogadro * friction)

	return &Sedimentation{
		FrictionCoefficient: friction,
		ParticleRadius:      radius,
		Coefficient:         s,
		Svedberg:            s * SvedbergPerSecond,
	}, nil
}

// Velocity is a terminal sedimentation velocity and the distance covered in a run.
type Velocity struct {
	MetersPerSecond float64
	MMPerSecond     float64
	DistanceMM      float64
}

// CalculateVelocity returns the terminal velocity S·RCF·g and the distance travelled in minutes.
func CalculateVelocity(s, rcf, minutes float64) (*Velocity, error) {
	if err := core.RequireFinite("sedimentation coefficient", s); err != nil {
		return nil, err
	}
	if err := core.RequireFinite("rcf", rcf); err != nil {
		return nil, err
	}
	if err := core.RequireFinite("time", minutes); err != nil {
		return nil, err
	}

	v := s * rcf * Gravity
	mm := v * 1000
	return &Velocity{
		MetersPerSecond: v,
		MMPerSecond:     mm,
		DistanceMM:      mm * minutes * 60,
	}, nil
}
