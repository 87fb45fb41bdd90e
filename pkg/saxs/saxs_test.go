package saxs

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

func syntheticGuinier(i0, rg, qmin, qmax, step float64) (q, intensity []float64) {
	n := int(math.Floor((qmax-qmin)/step+1e-9)) + 1
	for i := 0; i < n; i++ {
		x := qmin + float64(i)*step
		q = append(q, x)
		intensity = append(intensity, i0*math.Exp(-x*x*rg*rg/3))
	}
	return q, intensity
}

func TestGuinierRecoversSyntheticCurve(t *testing.T) {
	tests := []struct {
		name string
		i0   float64
		rg   float64
	}{
		{"lysozyme-like", 250, 14.3},
		{"BSA-like", 1200, 28},
		{"large", 50, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qmax := 1.2 / tt.rg
			q, intensity := syntheticGuinier(tt.i0, tt.rg, 0.002, qmax, qmax/200)

			fit, err := GuinierAnalysis(q, intensity, 0, math.Inf(1))
			if err != nil {
				t.Fatalf("GuinierAnalysis() error: %v", err)
			}
			if !scalar.EqualWithinRel(fit.I0, tt.i0, 0.01) {
				t.Errorf("I0 = %.4f, want %.4f", fit.I0, tt.i0)
			}
			if !scalar.EqualWithinRel(fit.Rg, tt.rg, 0.01) {
				t.Errorf("Rg = %.4f, want %.4f", fit.Rg, tt.rg)
			}
			if fit.RSquared <= 0.999 {
				t.Errorf("RSquared = %.6f, want > 0.999", fit.RSquared)
			}
			if !fit.WithinGuinier {
				t.Errorf("WithinGuinier = false, qmax·Rg = %.3f", fit.QMaxRg)
			}
			if fit.Points != len(q) {
				t.Errorf("Points = %d, want %d", fit.Points, len(q))
			}
		})
	}
}

func TestGuinierMatchesClosedForm(t *testing.T) {
	q := []float64{0.01, 0.02, 0.03, 0.04}
	intensity := []float64{100, 95, 88, 80}

	fit, err := GuinierAnalysis(q, intensity, 0, 0)
	if err != nil {
		t.Fatalf("GuinierAnalysis() error: %v", err)
	}

	var n, sx, sy, sxy, sxx float64
	for i := range q {
		x := q[i] * q[i]
		y := math.Log(intensity[i])
		n++
		sx += x
		sy += y
		sxy += x * y
		sxx += x * x
	}
	slope := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	intercept := (sy - slope*sx) / n

	if math.Abs(fit.Slope-slope) > 1e-9*math.Abs(slope) {
		t.Errorf("Slope = %v, want %v", fit.Slope, slope)
	}
	if math.Abs(fit.Intercept-intercept) > 1e-9 {
		t.Errorf("Intercept = %v, want %v", fit.Intercept, intercept)
	}
	if math.Abs(fit.Rg-math.Sqrt(-3*slope)) > 1e-9 {
		t.Errorf("Rg = %v, want %v", fit.Rg, math.Sqrt(-3*slope))
	}
}

func TestGuinierWindow(t *testing.T) {
	q, intensity := syntheticGuinier(100, 20, 0.005, 0.1, 0.005)
	fit, err := GuinierAnalysis(q, intensity, 0.0099, 0.0501)
	if err != nil {
		t.Fatalf("GuinierAnalysis() error: %v", err)
	}
	if fit.QMin < 0.0099 || fit.QMax > 0.0501 {
		t.Errorf("fit window [%v, %v] outside [0.01, 0.05]", fit.QMin, fit.QMax)
	}
	if fit.Points != 9 {
		t.Errorf("Points = %d, want 9", fit.Points)
	}
}

func TestGuinierInsufficientData(t *testing.T) {
	tests := []struct {
		name      string
		q         []float64
		intensity []float64
		qmin      float64
		qmax      float64
	}{
		{"empty", nil, nil, 0, 0},
		{"two points", []float64{0.01, 0.02}, []float64{10, 9}, 0, 0},
		{"non-positive intensities", []float64{0.01, 0.02, 0.03, 0.04}, []float64{10, 0, -1, 8}, 0, 0},
		{"window excludes data", []float64{0.01, 0.02, 0.03}, []float64{10, 9, 8}, 0.1, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GuinierAnalysis(tt.q, tt.intensity, tt.qmin, tt.qmax)
			var insufficient *core.InsufficientDataError
			if !errors.As(err, &insufficient) {
				t.Fatalf("expected *InsufficientDataError, got %v", err)
			}
			if insufficient.Required != MinGuinierPoints {
				t.Errorf("Required = %d, want %d", insufficient.Required, MinGuinierPoints)
			}
		})
	}
}

func TestGuinierPositiveSlope(t *testing.T) {
	q := []float64{0.01, 0.02, 0.03}
	intensity := []float64{10, 20, 40}

	_, err := GuinierAnalysis(q, intensity, 0, 0)
	var domain *core.DomainError
	if !errors.As(err, &domain) {
		t.Fatalf("expected *DomainError, got %v", err)
	}
}

func TestGuinierCurve(t *testing.T) {
	q, intensity := syntheticGuinier(10, 15, 0.01, 0.08, 0.002)
	c := &core.Curve{}
	for i := range q {
		c.Points = append(c.Points, core.Point{Q: q[i], Intensity: intensity[i]})
	}

	fit, err := GuinierCurve(c, 0, 0)
	if err != nil {
		t.Fatalf("GuinierCurve() error: %v", err)
	}
	if math.Abs(fit.Predict(0.05)-10*math.Exp(-0.05*0.05*15*15/3)) > 1e-6 {
		t.Errorf("Predict(0.05) = %v", fit.Predict(0.05))
	}
}

func TestCalculateTheoreticalI0(t *testing.T) {
	est, err := CalculateTheoreticalI0(66500, 5, 0.73)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 5 * 66500 * 7.8e-6
	if math.Abs(est.I0-want) > 1e-12 {
		t.Errorf("I0 = %v, want %v", est.I0, want)
	}
	if est.DeltaRho <= 0 {
		t.Errorf("DeltaRho = %v, want positive protein contrast", est.DeltaRho)
	}

	// the contrast route never changes the returned I0
	other, _ := CalculateTheoreticalI0(66500, 5, 0.80)
	if other.I0 != est.I0 {
		t.Errorf("I0 depends on vbar: %v vs %v", other.I0, est.I0)
	}

	if _, err := CalculateTheoreticalI0(0, 5, 0.73); err == nil {
		t.Error("expected error for zero molecular weight")
	}
}

func TestCalculateTheoreticalRg(t *testing.T) {
	tests := []struct {
		name    string
		ptype   ProteinType
		wantRg  float64
		wantTyp ProteinType
	}{
		{"globular", Globular, 0.77 * math.Pow(66500, 0.37), Globular},
		{"unfolded", Unfolded, 2.54 * math.Pow(66500, 0.522), Unfolded},
		{"idp", IDP, 2.49 * math.Pow(66500, 0.509), IDP},
		{"unknown defaults to globular", ProteinType(42), 0.77 * math.Pow(66500, 0.37), Globular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := CalculateTheoreticalRg(66500, tt.ptype)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(est.Rg-tt.wantRg) > 1e-9 {
				t.Errorf("Rg = %v, want %v", est.Rg, tt.wantRg)
			}
			if est.Type != tt.wantTyp {
				t.Errorf("Type = %v, want %v", est.Type, tt.wantTyp)
			}
			if math.Abs(est.PredictedRg-0.6543*math.Cbrt(66500)) > 1e-9 {
				t.Errorf("PredictedRg = %v", est.PredictedRg)
			}
			if math.Abs(est.QMaxGuinier*est.Rg-1.3) > 1e-12 {
				t.Errorf("QMaxGuinier·Rg = %v, want 1.3", est.QMaxGuinier*est.Rg)
			}
		})
	}
}

func TestParseSelectors(t *testing.T) {
	if ParseProteinType("idp") != IDP || ParseProteinType("whatever") != Globular {
		t.Error("ParseProteinType default handling broken")
	}
	if ParseShape("elongated") != ShapeElongated || ParseShape("cube") != ShapeGlobular {
		t.Error("ParseShape default handling broken")
	}
}

func TestCalculateTheoreticalDmax(t *testing.T) {
	tests := []struct {
		shape      Shape
		wantFactor float64
	}{
		{ShapeSphere, 2.58},
		{ShapeGlobular, 2.8},
		{ShapeElongated, 3.5},
		{Shape(7), 2.8},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			est, err := CalculateTheoreticalDmax(30, tt.shape)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(est.Dmax-tt.wantFactor*30) > 1e-9 {
				t.Errorf("Dmax = %v, want %v", est.Dmax, tt.wantFactor*30)
			}
			if est.DmaxMin > est.Dmax || est.DmaxMax < est.Dmax {
				t.Errorf("Dmax %v outside range [%v, %v]", est.Dmax, est.DmaxMin, est.DmaxMax)
			}
		})
	}
}

func TestCalculateAllTheoreticalParams(t *testing.T) {
	params, err := CalculateAllTheoreticalParams(14300, 2, Globular)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(params.DryVolume-1.212*14300) > 1e-9 {
		t.Errorf("DryVolume = %v, want %v", params.DryVolume, 1.212*14300)
	}
	if math.Abs(params.Dmax.Dmax-2.8*params.Rg.Rg) > 1e-9 {
		t.Errorf("Dmax = %v, want 2.8·Rg", params.Dmax.Dmax)
	}

	idp, err := CalculateAllTheoreticalParams(14300, 2, IDP)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idp.Dmax.Shape != ShapeElongated {
		t.Errorf("IDP Dmax shape = %v, want elongated", idp.Dmax.Shape)
	}

	_, err = CalculateAllTheoreticalParams(math.NaN(), 2, Globular)
	var missing *core.MissingParameterError
	if !errors.As(err, &missing) {
		t.Errorf("expected *MissingParameterError, got %v", err)
	}
}

func TestCalculateDetectorDistanceReference(t *testing.T) {
	got, err := CalculateDetectorDistance(66500, InputMW)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got.Rg-28) > 1e-9 {
		t.Errorf("Rg = %v, want 28", got.Rg)
	}
	if math.Abs(got.QMin-0.008) > 1e-12 {
		t.Errorf("QMin = %v, want 0.008", got.QMin)
	}
	if math.Abs(got.SuggestedDistance-1900) > 1e-6 {
		t.Errorf("SuggestedDistance = %v, want 1900", got.SuggestedDistance)
	}
}

func TestCalculateDetectorDistanceFromRg(t *testing.T) {
	got, err := CalculateDetectorDistance(28, InputRg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scalar.EqualWithinRel(got.MolecularWeight, 66500, 1e-9) {
		t.Errorf("MolecularWeight = %v, want 66500", got.MolecularWeight)
	}

	// doubling Rg halves qmin and doubles the distance
	big, _ := CalculateDetectorDistance(56, InputRg)
	if !scalar.EqualWithinRel(big.QMin, 0.004, 1e-9) || !scalar.EqualWithinRel(big.SuggestedDistance, 3800, 1e-9) {
		t.Errorf("Rg=56 gave qmin %v, distance %v", big.QMin, big.SuggestedDistance)
	}
}

func TestParseInputKind(t *testing.T) {
	if k, err := ParseInputKind("rg"); err != nil || k != InputRg {
		t.Errorf("ParseInputKind(rg) = %v, %v", k, err)
	}
	if _, err := ParseInputKind("volume"); err == nil {
		t.Error("expected error for unknown input kind")
	}
}
