package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
	"github.com/ChrisMcGann/SAXSKey/pkg/reader/fasta"
)

var (
	// Flags for sequence command
	seqString  string
	fastaFile  string
	reducedCys bool
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Analyze a protein sequence",
	Long: `Derive molecular weight, dry volume, electron count, extinction coefficient,
partial specific volume and dn/dc from a one-letter amino-acid sequence.

Examples:
  saxskey sequence --seq MKWVTFISLLLLFSSAYS
  saxskey sequence --fasta P02769.fasta --reduced`,
	RunE: runSequence,
}

func init() {
	sequenceCmd.Flags().StringVarP(&seqString, "seq", "s", "", "Protein sequence (one-letter codes)")
	sequenceCmd.Flags().StringVarP(&fastaFile, "fasta", "f", "", "FASTA or plain sequence file (first record is used)")
	sequenceCmd.Flags().BoolVar(&reducedCys, "reduced", false, "Treat cysteines as reduced (no cystine extinction)")
	sequenceCmd.MarkFlagsOneRequired("seq", "fasta")
	sequenceCmd.MarkFlagsMutuallyExclusive("seq", "fasta")
}

// loadSequence returns the sequence given by --seq or the first record of --fasta
func loadSequence(seq, path string) (string, error) {
	if path == "" {
		return seq, nil
	}
	rec, err := fasta.ReadFirst(path)
	if err != nil {
		return "", err
	}
	slog.Debug("sequence loaded", "file", path, "id", rec.ID, "residues", len(rec.Sequence))
	return rec.Sequence, nil
}

func runSequence(cmd *cobra.Command, args []string) error {
	raw, err := loadSequence(seqString, fastaFile)
	if err != nil {
		return err
	}

	result, err := core.AnalyzeProtein(raw, reducedCys)
	if err != nil {
		return err
	}

	printProtein(result)

	s := newSession()
	s.SetProtein(result)
	return saveReport(s)
}

func printProtein(p *core.ProteinAnalysis) {
	fmt.Printf("Length:                  %d residues\n", p.Length)
	fmt.Printf("Molecular weight:        %.2f Da\n", p.MolecularWeight)
	fmt.Printf("Dry volume:              %.1f Å³\n", p.DryVolume)
	fmt.Printf("Electrons:               %d\n", p.Electrons)
	fmt.Printf("Extinction (280 nm):     %.0f M⁻¹cm⁻¹", p.Extinction.Molar)
	if p.ReducedCysteines {
		fmt.Printf(" (reduced Cys)\n")
	} else {
		fmt.Printf(" (cystines)\n")
	}
	fmt.Printf("  oxidised / reduced:    %.0f / %.0f\n", p.Extinction.MolarOx, p.Extinction.MolarRed)
	fmt.Printf("  Abs 0.1%%:              %.3f\n", p.Extinction.Abs01)
	fmt.Printf("Partial specific volume: %.4f cm³/g\n", p.PartialSpecificVolume)
	fmt.Printf("dn/dc:                   %.3f mL/g\n", p.RefractiveIncrement)

	fmt.Printf("\nComposition:\n")
	for _, r := range p.Residues() {
		fmt.Printf("  %c %-14s %5d  %5.1f%%\n", r.Code, r.Name, r.Count, r.Percent)
	}
}
