package session

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
	"github.com/ChrisMcGann/SAXSKey/pkg/hplc"
	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

func TestNewSession(t *testing.T) {
	a := New("a")
	b := New("b")
	if a.ID == uuid.Nil {
		t.Error("ID not set")
	}
	if a.ID == b.ID {
		t.Error("sessions share an ID")
	}
	if _, ok := a.MolecularWeight(); ok {
		t.Error("empty session reports a molecular weight")
	}
	if _, ok := a.Rg(); ok {
		t.Error("empty session reports an Rg")
	}
}

func TestMolecularWeightPrefersSequence(t *testing.T) {
	s := New("")

	theory, err := saxs.CalculateAllTheoreticalParams(50000, 1, saxs.Globular)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTheoretical(theory)
	if mw, _ := s.MolecularWeight(); mw != 50000 {
		t.Errorf("MolecularWeight() = %v, want theoretical 50000", mw)
	}

	protein, err := core.AnalyzeProtein("GGGG", false)
	if err != nil {
		t.Fatal(err)
	}
	s.SetProtein(protein)
	if mw, _ := s.MolecularWeight(); mw != protein.MolecularWeight {
		t.Errorf("MolecularWeight() = %v, want sequence %v", mw, protein.MolecularWeight)
	}
}

func TestRgPrefersGuinier(t *testing.T) {
	s := New("")
	s.Concentration = 2
	s.SetProtein(&core.ProteinAnalysis{MolecularWeight: 66500})

	params, err := s.Theory(0, saxs.Globular)
	if err != nil {
		t.Fatalf("Theory() error: %v", err)
	}
	if params.Concentration != 2 {
		t.Errorf("Concentration = %v, want session value 2", params.Concentration)
	}
	if rg, _ := s.Rg(); rg != params.Rg.Rg {
		t.Errorf("Rg() = %v, want theoretical %v", rg, params.Rg.Rg)
	}

	s.SetGuinier(&saxs.GuinierFit{Rg: 28}, "bsa.dat")
	if rg, _ := s.Rg(); rg != 28 {
		t.Errorf("Rg() = %v, want measured 28", rg)
	}
	if s.GuinierSource != "bsa.dat" {
		t.Errorf("GuinierSource = %q", s.GuinierSource)
	}

	d, err := s.Detector()
	if err != nil {
		t.Fatalf("Detector() error: %v", err)
	}
	if math.Abs(d.SuggestedDistance-saxs.RefDistance) > 1e-9 {
		t.Errorf("SuggestedDistance = %v, want %v", d.SuggestedDistance, saxs.RefDistance)
	}
}

func TestTheoryWithoutMolecularWeight(t *testing.T) {
	s := New("")
	_, err := s.Theory(1, saxs.Globular)
	var missing *core.MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if _, err := s.Detector(); !errors.As(err, &missing) {
		t.Errorf("Detector() expected MissingParameterError, got %v", err)
	}
}

func TestAddSchedule(t *testing.T) {
	s := New("")
	sch, err := hplc.CalculateHPLCSAXSSettings(hplc.ScheduleInput{
		PeakCenter: 10.94, PeakFWHM: 1, InjectionVolume: 100, TargetFlowRate: 0.35, InitialFlowRate: 0.75,
	})
	if err != nil {
		t.Fatal(err)
	}
	s.AddSchedule(sch)
	s.AddSchedule(sch)
	if len(s.Schedules) != 2 {
		t.Errorf("len(Schedules) = %d, want 2", len(s.Schedules))
	}
}
