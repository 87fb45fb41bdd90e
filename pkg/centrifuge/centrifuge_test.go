package centrifuge

import (
	"errors"
	"math"
	"testing"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

func TestCalculateRCF(t *testing.T) {
	tests := []struct {
		name   string
		rpm    float64
		radius float64
		want   float64
	}{
		{"reference", 10000, 10, 11180},
		{"benchtop", 13000, 7.3, 1.118e-5 * 7.3 * 13000 * 13000},
		{"stopped", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateRCF(tt.rpm, tt.radius)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CalculateRCF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateRPMRoundTrip(t *testing.T) {
	for _, rpm := range []float64{500, 3000, 14000, 60000} {
		rcf, err := CalculateRCF(rpm, 8.4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := CalculateRPM(rcf, 8.4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-rpm) > 1e-6*rpm {
			t.Errorf("CalculateRPM(CalculateRCF(%v)) = %v", rpm, got)
		}
	}
}

func TestCalculateRCFMissingParameter(t *testing.T) {
	_, err := CalculateRCF(math.NaN(), 10)
	var missing *core.MissingParameterError
	if !errors.As(err, &missing) || missing.Name != "rpm" {
		t.Errorf("expected missing rpm, got %v", err)
	}

	_, err = CalculateRPM(100, 0)
	if !errors.As(err, &missing) || missing.Name != "radius" {
		t.Errorf("expected missing radius, got %v", err)
	}
}

func TestCalculateSedimentation(t *testing.T) {
	in := SedimentationInput{
		MolecularWeight:       66500,
		PartialSpecificVolume: 0.733,
		SolventDensity:        1.0,
		Viscosity:             1.002e-3,
		ParticleRadius:        3.5e-9,
	}

	got, err := CalculateSedimentation(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	friction := 6 * math.Pi * 1.002e-3 * 3.5e-9
	want := 66500 * (1 - 0.733) * 1e-3 / (core.Avogadro * friction)
	if math.Abs(got.Coefficient-want) > 1e-20 {
		t.Errorf("Coefficient = %v, want %v", got.Coefficient, want)
	}
	if math.Abs(got.Svedberg-want*1e13) > 1e-9 {
		t.Errorf("Svedberg = %v, want %v", got.Svedberg, want*1e13)
	}
	// BSA sediments at roughly 4-5 S
	if got.Svedberg < 3 || got.Svedberg > 6 {
		t.Errorf("Svedberg = %.2f, outside the expected BSA range", got.Svedberg)
	}
}

func TestCalculateSedimentationStokesFallback(t *testing.T) {
	in := SedimentationInput{
		MolecularWeight:       66500,
		PartialSpecificVolume: 0.733,
		SolventDensity:        DefaultDensity,
		Viscosity:             DefaultViscosity,
	}

	got, err := CalculateSedimentation(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := StokesRadius(66500, 0.733)
	if got.ParticleRadius != r {
		t.Errorf("ParticleRadius = %v, want Stokes radius %v", got.ParticleRadius, r)
	}
	// anhydrous BSA sphere is about 2.7 nm
	if r < 2.5e-9 || r > 3e-9 {
		t.Errorf("StokesRadius = %v m", r)
	}
}

func TestCalculateVelocity(t *testing.T) {
	v, err := CalculateVelocity(4.4e-13, 11180, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 4.4e-13 * 11180 * 9.8
	if math.Abs(v.MetersPerSecond-want) > 1e-20 {
		t.Errorf("MetersPerSecond = %v, want %v", v.MetersPerSecond, want)
	}
	if math.Abs(v.DistanceMM-want*1000*600) > 1e-12 {
		t.Errorf("DistanceMM = %v, want %v", v.DistanceMM, want*1000*600)
	}
}
