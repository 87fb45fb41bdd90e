package hplc

import (
	"math"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

// Calibration constants of the HPLC-SAXS schedule. Fitted against the beamline
// reference spreadsheet; reproduce exactly.
var (
	// peak-width scaling factor vs injection volume (µL), ascending powers
	scalingPoly = [4]float64{1.0, 2.1e-3, -1.2e-5, 2.4e-8}
	// elution time offset (min) vs injection volume (µL), ascending powers
	offsetPoly = [4]float64{0.42, 4.5e-3, -1.8e-5, 3.0e-8}
)

const (
	ReductionRatio      = 0.7
	RampLead            = 0.5  // min before peak start when the flow begins to drop
	RampUp              = 0.5  // min to return to the initial flow
	ReequilibrationTail = 5.6  // min of initial flow after the ramp up
	DeadVolume          = 0.05 // mL between column and capillary
	CollectionOffset    = 2.0  // min added to the slow-flow window
	FractionExpansion   = 2.45
	FractionVolume      = 1.2 // mL per fraction
	ReportMargin        = 1 + 3

	holdOverhead = 41 // s
	holdDivisor  = 4
	holdOffset   = 15
	framesBase   = 90
)

// Exposure times (s) for the six detector steps
var exposureTimes = [6]float64{40, 40, 40, 2, 2, 4}

// Fixed holds of steps 4-6
var fixedHolds = [3]int{100, 1, 1}

// ScheduleInput is the observed peak and volumetric setup.
type ScheduleInput struct {
	PeakCenter      float64 // min
	PeakFWHM        float64 // min
	InjectionVolume float64 // µL
	TargetFlowRate  float64 // mL/min
	InitialFlowRate float64 // mL/min
}

// Validate checks that every input is present and numeric.
func (in ScheduleInput) Validate() error {
	return core.RequireAllPositive(
		core.Param{Name: "peakCenter", Value: in.PeakCenter},
		core.Param{Name: "peakFWHM", Value: in.PeakFWHM},
		core.Param{Name: "injectionVolume", Value: in.InjectionVolume},
		core.Param{Name: "targetFlowRate", Value: in.TargetFlowRate},
		core.Param{Name: "initialFlowRate", Value: in.InitialFlowRate},
	)
}

// FlowPoint is one breakpoint of the pump program.
type FlowPoint struct {
	Label    string
	Time     float64 // min
	FlowRate float64 // mL/min
}

// FractionWindow is the fraction-collector program.
type FractionWindow struct {
	Start       float64 // min
	Stop        float64 // min
	TimePerTube float64 // min
}

// ExposureStep is one line of the detector program.
type ExposureStep struct {
	Step     int
	Exposure float64 // s
	Hold     int
	Frames   int // 0 when the step has no frame count
}

// Schedule is the full HPLC-SAXS derivation, in computation order.
type Schedule struct {
	Input ScheduleInput

	ScalingFactor float64
	TimeOffset    float64
	ScaledFWHM    float64
	TargetFWHM    float64

	PeakStart       float64
	PeakStop        float64
	SlowingDuration float64

	Transition         float64
	XRayStart          float64
	DeadVolumeTime     float64
	XRayStop           float64
	CollectionDuration float64
	RampUpTime         float64
	FlowEnd            float64

	Flow     []FlowPoint
	Fraction FractionWindow

	ReportStop int

	HoldFirst   int // steps 1-2
	HoldThird   int // step 3
	FramesStep4 int
	Exposure    []ExposureStep
}

func cubic(c [4]float64, x float64) float64 {
	return c[0] + c[1]*x + c[2]*x*x + c[3]*x*x*x
}

// CalculateHPLCSAXSSettings derives the flow, fraction and exposure programs from
// a single chromatography peak. Any missing input aborts the whole derivation.
func CalculateHPLCSAXSSettings(in ScheduleInput) (*Schedule, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s := &Schedule{Input: in}

	s.ScalingFactor = core.ToFixed(cubic(scalingPoly, in.InjectionVolume), 3)
	s.TimeOffset = core.ToFixed(cubic(offsetPoly, in.InjectionVolume), 3)
	s.ScaledFWHM = core.ToFixed(in.PeakFWHM*s.ScalingFactor, 3)
	s.TargetFWHM = core.ToFixed(s.ScaledFWHM*ReductionRatio, 3)

	half := s.ScaledFWHM / 2 * ReductionRatio
	s.PeakStart = core.ToFixed(in.PeakCenter+s.TimeOffset-half, 2)
	s.PeakStop = core.ToFixed(in.PeakCenter+s.TimeOffset+half, 2)
	s.SlowingDuration = core.ToFixed(s.PeakStop-s.PeakStart, 2)

	s.Transition = core.ToFixed(s.PeakStart-RampLead, 2)
	s.XRayStart = s.PeakStart
	s.DeadVolumeTime = core.ToFixed(DeadVolume/in.TargetFlowRate, 3)
	s.XRayStop = core.ToFixed(s.XRayStart+s.SlowingDuration+s.DeadVolumeTime+CollectionOffset, 2)
	s.CollectionDuration = core.ToFixed(s.XRayStop-s.XRayStart, 2)
	s.RampUpTime = core.ToFixed(s.XRayStop+RampUp, 2)
	s.FlowEnd = core.ToFixed(s.RampUpTime+ReequilibrationTail, 2)

	s.Flow = []FlowPoint{
		{Label: "initial", Time: 0, FlowRate: in.InitialFlowRate},
		{Label: "transition", Time: s.Transition, FlowRate: in.InitialFlowRate},
		{Label: "x-ray start", Time: s.XRayStart, FlowRate: in.TargetFlowRate},
		{Label: "x-ray stop", Time: s.XRayStop, FlowRate: in.TargetFlowRate},
		{Label: "ramp up", Time: s.RampUpTime, FlowRate: in.InitialFlowRate},
		{Label: "end", Time: s.FlowEnd, FlowRate: in.InitialFlowRate},
	}

	s.Fraction = FractionWindow{
		Start:       s.PeakStart,
		Stop:        core.ToFixed(s.PeakStart+s.CollectionDuration*FractionExpansion, 2),
		TimePerTube: core.ToFixed(FractionVolume/in.InitialFlowRate, 2),
	}

	s.ReportStop = int(math.Ceil(s.Fraction.Stop + ReportMargin))

	lead := exposureTimes[0] + exposureTimes[1] + exposureTimes[2]
	s.HoldFirst = int(math.Round((s.Transition*60-lead-holdOverhead)/holdDivisor - holdOffset))
	if s.HoldFirst < 1 {
		s.HoldFirst = 1
	}
	s.HoldThird = 2*s.HoldFirst + 1
	s.FramesStep4 = int(math.Round(s.CollectionDuration*60/exposureTimes[3] + framesBase))

	holds := [6]int{s.HoldFirst, s.HoldFirst, s.HoldThird, fixedHolds[0], fixedHolds[1], fixedHolds[2]}
	s.Exposure = make([]ExposureStep, len(exposureTimes))
	for i, exp := range exposureTimes {
		s.Exposure[i] = ExposureStep{Step: i + 1, Exposure: exp, Hold: holds[i]}
	}
	s.Exposure[3].Frames = s.FramesStep4

	return s, nil
}
