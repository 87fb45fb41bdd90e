package core

import (
	"math"
	"testing"
)

func TestCurveValidation(t *testing.T) {
	tests := []struct {
		name    string
		curve   *Curve
		wantErr bool
	}{
		{
			name: "valid curve",
			curve: &Curve{Points: []Point{
				{Q: 0.01, Intensity: 100},
				{Q: 0.02, Intensity: 90},
			}},
			wantErr: false,
		},
		{
			name:    "no points",
			curve:   &Curve{},
			wantErr: true,
		},
		{
			name: "unsorted points",
			curve: &Curve{Points: []Point{
				{Q: 0.02, Intensity: 90},
				{Q: 0.01, Intensity: 100},
			}},
			wantErr: true,
		},
		{
			name: "NaN intensity",
			curve: &Curve{Points: []Point{
				{Q: 0.01, Intensity: math.NaN()},
			}},
			wantErr: true,
		},
		{
			name: "negative q",
			curve: &Curve{Points: []Point{
				{Q: -0.01, Intensity: 1},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.curve.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCurveSort(t *testing.T) {
	c := &Curve{Points: []Point{
		{Q: 0.3, Intensity: 1},
		{Q: 0.1, Intensity: 3},
		{Q: 0.2, Intensity: 2},
	}}

	c.Sort()

	q, intensity := c.Columns()
	wantQ := []float64{0.1, 0.2, 0.3}
	wantI := []float64{3, 2, 1}
	for i := range wantQ {
		if q[i] != wantQ[i] || intensity[i] != wantI[i] {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, q[i], intensity[i], wantQ[i], wantI[i])
		}
	}
}

func TestCurveName(t *testing.T) {
	c := &Curve{SourceFile: "bsa.dat"}
	if c.Name() != "bsa.dat" {
		t.Errorf("Name() = %s, want bsa.dat", c.Name())
	}
	c.Title = "BSA 5 mg/mL"
	if c.Name() != "BSA 5 mg/mL" {
		t.Errorf("Name() = %s, want title", c.Name())
	}
}
