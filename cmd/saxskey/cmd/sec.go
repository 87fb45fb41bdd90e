package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/hplc"
)

var (
	// Flags for sec commands
	secFlow       float64
	secWidth      float64
	secInjVol     float64
	secAbsorbance float64
	secExtinction float64
	secPath       float64
	secMW         float64
	secRT         float64
	secPore       int
)

var secCmd = &cobra.Command{
	Use:   "sec",
	Short: "Size-exclusion chromatography calculators",
}

var secDilutionCmd = &cobra.Command{
	Use:   "dilution",
	Short: "Peak volume and on-column dilution",
	Long: `Example:
  saxskey sec dilution --flow 0.5 --width 0.8 --inj-vol 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := hplc.CalculateDilution(secFlow, secWidth, secInjVol)
		if err != nil {
			return err
		}
		fmt.Printf("Peak volume:     %.1f µL\n", d.PeakVolume)
		fmt.Printf("Dilution factor: %.2f\n", d.DilutionFactor)
		return nil
	},
}

var secUVCmd = &cobra.Command{
	Use:   "uv",
	Short: "Concentration from UV absorbance",
	Long: `Example:
  saxskey sec uv --abs 0.66 --ext 43824 --mw 66430`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := hplc.CalculateUVConcentration(secAbsorbance, secExtinction, secPath, secMW)
		if err != nil {
			return err
		}
		fmt.Printf("Concentration: %.4g M\n", c.Molar)
		fmt.Printf("               %.4g mg/mL\n", c.MgPerML)
		return nil
	},
}

var secRetentionCmd = &cobra.Command{
	Use:   "retention",
	Short: "Expected retention time of a molecular weight",
	Long: `Example:
  saxskey sec retention --mw 66500 --pore 300 --flow 0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := hplc.CalculateRetentionTimeFromMW(secMW, secPore, secFlow)
		if err != nil {
			return err
		}
		col := hplc.ColumnFor(secPore)
		fmt.Printf("Column:         %d Å (Ve = %.2f %+.2f·ln MW)\n", col.PoreSize, col.A, col.B)
		fmt.Printf("Retention time: %.2f min\n", rt)
		return nil
	},
}

var secMWCmd = &cobra.Command{
	Use:   "mw",
	Short: "Molecular weight from a retention time",
	Long: `Example:
  saxskey sec mw --rt 22.5 --pore 300 --flow 0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mw, err := hplc.CalculateMWFromRetentionTime(secRT, secPore, secFlow)
		if err != nil {
			return err
		}
		fmt.Printf("Molecular weight: %.0f Da\n", mw)
		return nil
	},
}

var secResolutionCmd = &cobra.Command{
	Use:   "resolution",
	Short: "Mass resolution of a peak",
	Long: `Example:
  saxskey sec resolution --mw 66500 --width 0.8 --pore 300 --flow 0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dm, err := hplc.CalculateMassResolution(secMW, secWidth, secPore, secFlow)
		if err != nil {
			return err
		}
		fmt.Printf("Mass resolution: ±%.0f Da\n", dm)
		return nil
	},
}

var secColumnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List column calibrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range hplc.Columns() {
			fmt.Printf("%4d Å  Ve = %.2f %+.2f·ln MW\n", c.PoreSize, c.A, c.B)
		}
		return nil
	},
}

func init() {
	secCmd.AddCommand(secDilutionCmd, secUVCmd, secRetentionCmd, secMWCmd, secResolutionCmd, secColumnsCmd)

	secDilutionCmd.Flags().Float64Var(&secFlow, "flow", 0, "Flow rate (mL/min, required)")
	secDilutionCmd.Flags().Float64Var(&secWidth, "width", 0, "Peak FWHM (min, required)")
	secDilutionCmd.Flags().Float64Var(&secInjVol, "inj-vol", 0, "Injected volume (µL, required)")
	secDilutionCmd.MarkFlagRequired("flow")
	secDilutionCmd.MarkFlagRequired("width")
	secDilutionCmd.MarkFlagRequired("inj-vol")

	secUVCmd.Flags().Float64Var(&secAbsorbance, "abs", 0, "Absorbance at 280 nm (required)")
	secUVCmd.Flags().Float64Var(&secExtinction, "ext", 0, "Molar extinction coefficient (M⁻¹cm⁻¹, required)")
	secUVCmd.Flags().Float64Var(&secPath, "path", 1, "Path length (cm)")
	secUVCmd.Flags().Float64Var(&secMW, "mw", 0, "Molecular weight (Da, required)")
	secUVCmd.MarkFlagRequired("abs")
	secUVCmd.MarkFlagRequired("ext")
	secUVCmd.MarkFlagRequired("mw")

	for _, c := range []*cobra.Command{secRetentionCmd, secMWCmd, secResolutionCmd} {
		c.Flags().IntVar(&secPore, "pore", hplc.DefaultPoreSize, "Column pore size (Å)")
		c.Flags().Float64Var(&secFlow, "flow", 0, "Flow rate (mL/min, required)")
		c.MarkFlagRequired("flow")
	}
	secRetentionCmd.Flags().Float64Var(&secMW, "mw", 0, "Molecular weight (Da, required)")
	secRetentionCmd.MarkFlagRequired("mw")
	secMWCmd.Flags().Float64Var(&secRT, "rt", 0, "Retention time (min, required)")
	secMWCmd.MarkFlagRequired("rt")
	secResolutionCmd.Flags().Float64Var(&secMW, "mw", 0, "Molecular weight (Da, required)")
	secResolutionCmd.Flags().Float64Var(&secWidth, "width", 0, "Peak width (min, required)")
	secResolutionCmd.MarkFlagRequired("mw")
	secResolutionCmd.MarkFlagRequired("width")
}
