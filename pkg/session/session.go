// Package session carries results between calculators for one caller.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
	"github.com/ChrisMcGann/SAXSKey/pkg/hplc"
	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

// Session holds the latest result of each calculator. It is owned by the
// caller and is not safe for concurrent use.
type Session struct {
	ID      uuid.UUID
	Created time.Time
	Label   string

	Protein       *core.ProteinAnalysis
	Concentration float64 // mg/mL, 0 when unknown
	Guinier       *saxs.GuinierFit
	GuinierSource string // curve file name
	Theoretical   *saxs.TheoreticalParams
	Schedules     []*hplc.Schedule
}

// New creates an empty session
func New(label string) *Session {
	return &Session{
		ID:      uuid.New(),
		Created: time.Now(),
		Label:   label,
	}
}

// SetProtein records a sequence analysis
func (s *Session) SetProtein(p *core.ProteinAnalysis) {
	s.Protein = p
}

// SetGuinier records a Guinier fit and the curve it came from
func (s *Session) SetGuinier(fit *saxs.GuinierFit, source string) {
	s.Guinier = fit
	s.GuinierSource = source
}

// SetTheoretical records theoretical estimates
func (s *Session) SetTheoretical(t *saxs.TheoreticalParams) {
	s.Theoretical = t
}

// AddSchedule appends an HPLC-SAXS schedule
func (s *Session) AddSchedule(sch *hplc.Schedule) {
	s.Schedules = append(s.Schedules, sch)
}

// MolecularWeight returns the best known molecular weight (Da). The sequence
// value wins over the one the theoretical estimates were computed from.
func (s *Session) MolecularWeight() (float64, bool) {
	if s.Protein != nil {
		return s.Protein.MolecularWeight, true
	}
	if s.Theoretical != nil {
		return s.Theoretical.MolecularWeight, true
	}
	return 0, false
}

// Rg returns the best known radius of gyration (Å). A measured Guinier Rg
// wins over the theoretical one.
func (s *Session) Rg() (float64, bool) {
	if s.Guinier != nil {
		return s.Guinier.Rg, true
	}
	if s.Theoretical != nil && s.Theoretical.Rg != nil {
		return s.Theoretical.Rg.Rg, true
	}
	return 0, false
}

// Theory computes and records theoretical estimates from the session
// molecular weight.
func (s *Session) Theory(concentration float64, t saxs.ProteinType) (*saxs.TheoreticalParams, error) {
	mw, ok := s.MolecularWeight()
	if !ok {
		return nil, &core.MissingParameterError{Name: "molecular weight"}
	}
	if concentration <= 0 {
		concentration = s.Concentration
	}
	params, err := saxs.CalculateAllTheoreticalParams(mw, concentration, t)
	if err != nil {
		return nil, err
	}
	s.Theoretical = params
	return params, nil
}

// Detector suggests a detector distance from the session Rg, or from the
// molecular weight when no Rg is known.
func (s *Session) Detector() (*saxs.DetectorDistance, error) {
	if rg, ok := s.Rg(); ok {
		return saxs.CalculateDetectorDistance(rg, saxs.InputRg)
	}
	if mw, ok := s.MolecularWeight(); ok {
		return saxs.CalculateDetectorDistance(mw, saxs.InputMW)
	}
	return nil, &core.MissingParameterError{Name: "molecular weight"}
}
