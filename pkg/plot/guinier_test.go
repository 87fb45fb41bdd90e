package plot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

func testFit(t *testing.T) *saxs.GuinierFit {
	t.Helper()
	var q, intensity []float64
	for i := 1; i <= 20; i++ {
		qi := 0.002 * float64(i)
		q = append(q, qi)
		intensity = append(intensity, 100*math.Exp(-qi*qi*25*25/3))
	}
	fit, err := saxs.GuinierAnalysis(q, intensity, 0, 0)
	if err != nil {
		t.Fatalf("GuinierAnalysis() error: %v", err)
	}
	return fit
}

func TestSaveGuinier(t *testing.T) {
	fit := testFit(t)
	dir := t.TempDir()

	for _, name := range []string{"guinier.png", "guinier.svg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveGuinier(fit, "test", path); err != nil {
				t.Fatalf("SaveGuinier() error: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("plot not written: %v", err)
			}
			if info.Size() == 0 {
				t.Error("plot file is empty")
			}
		})
	}
}

func TestSaveGuinierErrors(t *testing.T) {
	dir := t.TempDir()
	if err := SaveGuinier(testFit(t), "", filepath.Join(dir, "plot.bmp")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if err := SaveGuinier(&saxs.GuinierFit{}, "", filepath.Join(dir, "plot.png")); err == nil {
		t.Error("expected error for empty fit")
	}
}

func TestFitLine(t *testing.T) {
	fit := testFit(t)
	line := fitLine(fit)

	if line[0].X != fit.X[0] || line[1].X != fit.X[len(fit.X)-1] {
		t.Fatalf("line spans %v..%v, want %v..%v", line[0].X, line[1].X, fit.X[0], fit.X[len(fit.X)-1])
	}
	for _, pt := range line {
		want := math.Log(fit.I0) - fit.Rg*fit.Rg*pt.X/3
		if math.Abs(pt.Y-want) > 1e-9 {
			t.Errorf("ln I at q²=%v: got %v, want %v", pt.X, pt.Y, want)
		}
	}
}
