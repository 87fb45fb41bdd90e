package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/hplc"
)

var (
	// Flags for schedule command
	peakCenter  float64
	peakFWHM    float64
	injVolume   float64
	targetFlow  float64
	initialFlow float64
	batchCSV    string
)

// scheduleColumns is the header of a batch file, in column order
var scheduleColumns = []string{"peakCenter", "peakFWHM", "injectionVolume", "targetFlowRate", "initialFlowRate"}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Derive an HPLC-SAXS flow, fraction and exposure schedule",
	Long: `Derive the pump program, fraction-collector window and detector exposure
program for an HPLC-SAXS run from one observed chromatography peak.

Examples:
  # Single peak
  saxskey schedule --peak-center 10.937 --fwhm 1 --inj-vol 100 --target-flow 0.35 --initial-flow 0.75

  # One schedule per CSV row, stored in a report
  saxskey schedule --batch peaks.csv --db report.db

The batch file has a header line followed by rows of
peakCenter,peakFWHM,injectionVolume,targetFlowRate,initialFlowRate`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().Float64Var(&peakCenter, "peak-center", 0, "Peak center (min)")
	scheduleCmd.Flags().Float64Var(&peakFWHM, "fwhm", 0, "Peak FWHM (min)")
	scheduleCmd.Flags().Float64Var(&injVolume, "inj-vol", 0, "Injection volume (µL)")
	scheduleCmd.Flags().Float64Var(&targetFlow, "target-flow", 0, "Flow rate during exposure (mL/min)")
	scheduleCmd.Flags().Float64Var(&initialFlow, "initial-flow", 0, "Initial flow rate (mL/min)")
	scheduleCmd.Flags().StringVar(&batchCSV, "batch", "", "CSV file with one peak per line")
	scheduleCmd.MarkFlagsRequiredTogether("peak-center", "fwhm", "inj-vol", "target-flow", "initial-flow")
	scheduleCmd.MarkFlagsOneRequired("peak-center", "batch")
	scheduleCmd.MarkFlagsMutuallyExclusive("peak-center", "batch")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	t0 := time.Now()

	inputs := []hplc.ScheduleInput{{
		PeakCenter:      peakCenter,
		PeakFWHM:        peakFWHM,
		InjectionVolume: injVolume,
		TargetFlowRate:  targetFlow,
		InitialFlowRate: initialFlow,
	}}
	if batchCSV != "" {
		var err error
		inputs, err = loadScheduleCSV(batchCSV)
		if err != nil {
			return fmt.Errorf("failed to load batch CSV: %w", err)
		}
		fmt.Printf("Loaded %d peaks\n", len(inputs))
	}

	s := newSession()
	skipped := 0

	for i, in := range inputs {
		sch, err := hplc.CalculateHPLCSAXSSettings(in)
		if err != nil {
			if len(inputs) == 1 {
				return err
			}
			fmt.Fprintf(os.Stderr, "Warning: row %d: %v\n", i+1, err)
			skipped++
			continue
		}
		logSchedule(sch)

		if len(inputs) > 1 {
			fmt.Printf("\n=== Peak %d (center %.3f min) ===\n", i+1, in.PeakCenter)
		}
		printSchedule(sch)
		s.AddSchedule(sch)
	}

	if skipped > 0 {
		fmt.Printf("\nSkipped: %d rows (missing parameters)\n", skipped)
	}
	slog.Debug("Done", "schedules", len(s.Schedules), "elapsed", time.Since(t0))

	if len(s.Schedules) == 0 {
		return nil
	}
	return saveReport(s)
}

func logSchedule(sch *hplc.Schedule) {
	slog.Debug("peak correction",
		"scalingFactor", sch.ScalingFactor,
		"timeOffset", sch.TimeOffset,
		"scaledFWHM", sch.ScaledFWHM,
		"targetFWHM", sch.TargetFWHM)
	slog.Debug("slow window",
		"start", sch.PeakStart,
		"stop", sch.PeakStop,
		"duration", sch.SlowingDuration,
		"deadVolume", sch.DeadVolumeTime)
	slog.Debug("detector",
		"holdFirst", sch.HoldFirst,
		"holdThird", sch.HoldThird,
		"framesStep4", sch.FramesStep4)
}

func printSchedule(sch *hplc.Schedule) {
	fmt.Printf("Peak window:   %.2f - %.2f min (target FWHM %.3f min)\n", sch.PeakStart, sch.PeakStop, sch.TargetFWHM)

	fmt.Printf("\nFlow program:\n")
	fmt.Printf("  %-12s %8s %10s\n", "step", "time", "mL/min")
	for _, fp := range sch.Flow {
		fmt.Printf("  %-12s %8.2f %10.3f\n", fp.Label, fp.Time, fp.FlowRate)
	}

	fmt.Printf("\nFraction collector:\n")
	fmt.Printf("  start %.2f min, stop %.2f min, %.2f min per tube\n",
		sch.Fraction.Start, sch.Fraction.Stop, sch.Fraction.TimePerTube)
	fmt.Printf("  report to %d min\n", sch.ReportStop)

	fmt.Printf("\nExposure program:\n")
	fmt.Printf("  %-4s %8s %6s %7s\n", "step", "exp (s)", "hold", "frames")
	for _, e := range sch.Exposure {
		frames := "-"
		if e.Frames > 0 {
			frames = strconv.Itoa(e.Frames)
		}
		fmt.Printf("  %-4d %8.0f %6d %7s\n", e.Step, e.Exposure, e.Hold, frames)
	}
}

// loadScheduleCSV reads batch schedule inputs. Empty cells become NaN so the
// calculator reports them as missing parameters for that row.
func loadScheduleCSV(path string) ([]hplc.ScheduleInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var result []hplc.ScheduleInput
	scanner := bufio.NewScanner(file)

	// Skip header line
	scanner.Scan()

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < len(scheduleColumns) {
			return nil, fmt.Errorf("line %d: expected %d fields (%s), got %d",
				lineNum, len(scheduleColumns), strings.Join(scheduleColumns, ","), len(parts))
		}

		values := make([]float64, len(scheduleColumns))
		for i := range scheduleColumns {
			field := strings.TrimSpace(parts[i])
			if field == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s value '%s': %w", lineNum, scheduleColumns[i], field, err)
			}
			values[i] = v
		}

		result = append(result, hplc.ScheduleInput{
			PeakCenter:      values[0],
			PeakFWHM:        values[1],
			InjectionVolume: values[2],
			TargetFlowRate:  values[3],
			InitialFlowRate: values[4],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return result, nil
}
