// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/session"
	"github.com/ChrisMcGann/SAXSKey/pkg/writer/sqlite"
)

var (
	// Global flags
	verbose      bool
	reportDB     string
	sessionLabel string
)

var rootCmd = &cobra.Command{
	Use:   "saxskey",
	Short: "SAXSKey - SAXS experiment planning and analysis calculators",
	Long: `SAXSKey bundles the calculators used when planning and analysing
small-angle X-ray scattering experiments:

- Protein sequence analysis (mass, volume, electrons, extinction, v-bar)
- Guinier analysis of scattering curves
- Theoretical I(0), Rg, Dmax and detector distance
- Centrifugation (RCF, sedimentation, terminal velocity)
- SEC calibration, UV concentration and dilution
- HPLC-SAXS flow, fraction and exposure schedules`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log intermediate values")
	rootCmd.PersistentFlags().StringVar(&reportDB, "db", "", "Append results to a SQLite report file")
	rootCmd.PersistentFlags().StringVar(&sessionLabel, "label", "", "Label stored with the report session")

	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(guinierCmd)
	rootCmd.AddCommand(theoryCmd)
	rootCmd.AddCommand(detectorCmd)
	rootCmd.AddCommand(centrifugeCmd)
	rootCmd.AddCommand(secCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// newSession starts the session that collects this invocation's results
func newSession() *session.Session {
	return session.New(sessionLabel)
}

// saveReport writes the session to --db when it is set
func saveReport(s *session.Session) error {
	if reportDB == "" {
		return nil
	}

	writer, err := sqlite.NewWriter(reportDB)
	if err != nil {
		return fmt.Errorf("failed to create report database: %w", err)
	}

	if err := writer.WriteSession(s); err != nil {
		writer.Abort()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize report: %w", err)
	}

	fmt.Printf("Report: %s (session %s)\n", reportDB, s.ID)
	return nil
}
