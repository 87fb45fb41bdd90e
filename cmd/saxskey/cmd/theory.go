package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

var (
	// Flags for theory command
	theoryMW    float64
	theorySeq   string
	theoryFasta string
	theoryConc  float64
	proteinType string
	theoryShape string

	// Flags for detector command
	detectorValue float64
	detectorInput string
	detectorSeq   string
	detectorFasta string
)

var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Estimate I(0), Rg and Dmax from molecular weight",
	Long: `Estimate theoretical scattering parameters from a molecular weight, given
directly or computed from a sequence.

Examples:
  saxskey theory --mw 66500 --conc 5
  saxskey theory --seq MKWVTFISLL... --type idp --shape elongated`,
	RunE: runTheory,
}

var detectorCmd = &cobra.Command{
	Use:   "detector",
	Short: "Suggest a sample-detector distance",
	Long: `Scale the reference setup (66.5 kDa, Rg 28 Å, qmin 0.008 Å⁻¹ at 1900 mm)
to a molecular weight or radius of gyration, or to the mass of a sequence.

Examples:
  saxskey detector --value 150000
  saxskey detector --value 45 --input rg
  saxskey detector --fasta P02769.fasta`,
	RunE: runDetector,
}

func init() {
	theoryCmd.Flags().Float64Var(&theoryMW, "mw", 0, "Molecular weight (Da)")
	theoryCmd.Flags().StringVar(&theorySeq, "seq", "", "Protein sequence to take the molecular weight from")
	theoryCmd.Flags().StringVar(&theoryFasta, "fasta", "", "FASTA file to take the molecular weight from")
	theoryCmd.Flags().Float64VarP(&theoryConc, "conc", "c", 1, "Concentration (mg/mL)")
	theoryCmd.Flags().StringVarP(&proteinType, "type", "t", "globular", "Protein type: globular, unfolded or idp")
	theoryCmd.Flags().StringVar(&theoryShape, "shape", "", "Dmax shape: sphere, globular or elongated (default from --type)")
	theoryCmd.MarkFlagsOneRequired("mw", "seq", "fasta")
	theoryCmd.MarkFlagsMutuallyExclusive("mw", "seq", "fasta")

	detectorCmd.Flags().Float64Var(&detectorValue, "value", 0, "Molecular weight (Da) or Rg (Å), see --input")
	detectorCmd.Flags().StringVar(&detectorInput, "input", "mw", "Meaning of --value: mw or rg")
	detectorCmd.Flags().StringVar(&detectorSeq, "seq", "", "Protein sequence to take the molecular weight from")
	detectorCmd.Flags().StringVar(&detectorFasta, "fasta", "", "FASTA file to take the molecular weight from")
	detectorCmd.MarkFlagsOneRequired("value", "seq", "fasta")
	detectorCmd.MarkFlagsMutuallyExclusive("value", "seq", "fasta")
}

func runTheory(cmd *cobra.Command, args []string) error {
	s := newSession()
	s.Concentration = theoryConc

	if theorySeq != "" || theoryFasta != "" {
		raw, err := loadSequence(theorySeq, theoryFasta)
		if err != nil {
			return err
		}
		protein, err := core.AnalyzeProtein(raw, false)
		if err != nil {
			return err
		}
		s.SetProtein(protein)
		fmt.Printf("Sequence MW:      %.2f Da (%d residues)\n", protein.MolecularWeight, protein.Length)
	}

	var params *saxs.TheoreticalParams
	var err error
	if s.Protein != nil {
		params, err = s.Theory(theoryConc, saxs.ParseProteinType(proteinType))
	} else {
		params, err = saxs.CalculateAllTheoreticalParams(theoryMW, theoryConc, saxs.ParseProteinType(proteinType))
		if err == nil {
			s.SetTheoretical(params)
		}
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("shape") {
		dmax, err := saxs.CalculateTheoreticalDmax(params.Rg.Rg, saxs.ParseShape(theoryShape))
		if err != nil {
			return err
		}
		params.Dmax = dmax
	}

	slog.Debug("contrast", "volume", params.I0.MolecularVolume, "deltaRho", params.I0.DeltaRho, "deltaSLD", params.I0.DeltaSLD)

	fmt.Printf("Molecular weight: %.2f Da\n", params.MolecularWeight)
	fmt.Printf("Concentration:    %.3g mg/mL\n", params.Concentration)
	fmt.Printf("I(0):             %.4g cm⁻¹\n", params.I0.I0)
	fmt.Printf("Rg:               %.2f Å (%s)\n", params.Rg.Rg, params.Rg.Type)
	fmt.Printf("Rg (MW^1/3):      %.2f Å\n", params.Rg.PredictedRg)
	fmt.Printf("Guinier qmax:     %.4f Å⁻¹\n", params.Rg.QMaxGuinier)
	fmt.Printf("Dmax:             %.1f Å (%.1f - %.1f, %s)\n",
		params.Dmax.Dmax, params.Dmax.DmaxMin, params.Dmax.DmaxMax, params.Dmax.Shape)
	fmt.Printf("Dry volume:       %.0f Å³\n", params.DryVolume)

	return saveReport(s)
}

func runDetector(cmd *cobra.Command, args []string) error {
	d, err := suggestDetector(detectorValue, detectorInput, detectorSeq, detectorFasta)
	if err != nil {
		return err
	}

	fmt.Printf("Molecular weight:   %.0f Da\n", d.MolecularWeight)
	fmt.Printf("Rg:                 %.2f Å\n", d.Rg)
	fmt.Printf("Required qmin:      %.5f Å⁻¹\n", d.QMin)
	fmt.Printf("Suggested distance: %.0f mm\n", d.SuggestedDistance)
	return nil
}

// suggestDetector scales the reference setup to a sequence when one is given,
// otherwise to value read according to input.
func suggestDetector(value float64, input, seq, fastaPath string) (*saxs.DetectorDistance, error) {
	if seq == "" && fastaPath == "" {
		kind, err := saxs.ParseInputKind(input)
		if err != nil {
			return nil, err
		}
		return saxs.CalculateDetectorDistance(value, kind)
	}

	raw, err := loadSequence(seq, fastaPath)
	if err != nil {
		return nil, err
	}
	protein, err := core.AnalyzeProtein(raw, false)
	if err != nil {
		return nil, err
	}

	s := newSession()
	s.SetProtein(protein)
	return s.Detector()
}
