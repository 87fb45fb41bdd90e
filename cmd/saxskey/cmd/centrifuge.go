package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SAXSKey/pkg/centrifuge"
	"github.com/ChrisMcGann/SAXSKey/pkg/saxs"
)

var (
	// Flags for centrifuge commands
	rotorRPM     float64
	rotorRCF     float64
	rotorRadius  float64
	sedMW        float64
	sedVbar      float64
	sedDensity   float64
	sedViscosity float64
	sedRadiusNM  float64
	sedMinutes   float64
)

var centrifugeCmd = &cobra.Command{
	Use:   "centrifuge",
	Short: "Centrifugation calculators",
}

var rcfCmd = &cobra.Command{
	Use:   "rcf",
	Short: "Convert rpm to relative centrifugal force",
	Long: `Example:
  saxskey centrifuge rcf --rpm 14000 --radius 8.4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rcf, err := centrifuge.CalculateRCF(rotorRPM, rotorRadius)
		if err != nil {
			return err
		}
		fmt.Printf("RCF: %.0f ×g\n", rcf)
		return nil
	},
}

var rpmCmd = &cobra.Command{
	Use:   "rpm",
	Short: "Convert relative centrifugal force to rpm",
	Long: `Example:
  saxskey centrifuge rpm --rcf 16000 --radius 8.4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rpm, err := centrifuge.CalculateRPM(rotorRCF, rotorRadius)
		if err != nil {
			return err
		}
		fmt.Printf("RPM: %.0f\n", rpm)
		return nil
	},
}

var sedimentCmd = &cobra.Command{
	Use:   "sediment",
	Short: "Sedimentation coefficient and distance travelled in a spin",
	Long: `Estimate the sedimentation coefficient of a particle and how far it
travels at a given RCF. Without --radius-nm the Stokes radius of a sphere
of the given mass is used.

Example:
  saxskey centrifuge sediment --mw 66500 --rcf 16000 --time 10`,
	RunE: runSediment,
}

func init() {
	centrifugeCmd.AddCommand(rcfCmd, rpmCmd, sedimentCmd)

	rcfCmd.Flags().Float64Var(&rotorRPM, "rpm", 0, "Rotor speed (rpm, required)")
	rcfCmd.Flags().Float64Var(&rotorRadius, "radius", 0, "Rotor radius (cm, required)")
	rcfCmd.MarkFlagRequired("rpm")
	rcfCmd.MarkFlagRequired("radius")

	rpmCmd.Flags().Float64Var(&rotorRCF, "rcf", 0, "Relative centrifugal force (×g, required)")
	rpmCmd.Flags().Float64Var(&rotorRadius, "radius", 0, "Rotor radius (cm, required)")
	rpmCmd.MarkFlagRequired("rcf")
	rpmCmd.MarkFlagRequired("radius")

	sedimentCmd.Flags().Float64Var(&sedMW, "mw", 0, "Molecular weight (Da, required)")
	sedimentCmd.Flags().Float64Var(&sedVbar, "vbar", saxs.DefaultPartialSpecificVolume, "Partial specific volume (cm³/g)")
	sedimentCmd.Flags().Float64Var(&sedDensity, "density", centrifuge.DefaultDensity, "Solvent density (g/cm³)")
	sedimentCmd.Flags().Float64Var(&sedViscosity, "viscosity", centrifuge.DefaultViscosity, "Solvent viscosity (Pa·s)")
	sedimentCmd.Flags().Float64Var(&sedRadiusNM, "radius-nm", 0, "Particle radius (nm, 0 = Stokes radius)")
	sedimentCmd.Flags().Float64Var(&rotorRCF, "rcf", 0, "Relative centrifugal force (×g, required)")
	sedimentCmd.Flags().Float64Var(&sedMinutes, "time", 10, "Spin time (min)")
	sedimentCmd.MarkFlagRequired("mw")
	sedimentCmd.MarkFlagRequired("rcf")
}

func runSediment(cmd *cobra.Command, args []string) error {
	sed, err := centrifuge.CalculateSedimentation(centrifuge.SedimentationInput{
		MolecularWeight:       sedMW,
		PartialSpecificVolume: sedVbar,
		SolventDensity:        sedDensity,
		Viscosity:             sedViscosity,
		ParticleRadius:        sedRadiusNM * 1e-9,
	})
	if err != nil {
		return err
	}

	v, err := centrifuge.CalculateVelocity(sed.Coefficient, rotorRCF, sedMinutes)
	if err != nil {
		return err
	}

	fmt.Printf("Particle radius:      %.2f nm\n", sed.ParticleRadius*1e9)
	fmt.Printf("Friction coefficient: %.4g kg/s\n", sed.FrictionCoefficient)
	fmt.Printf("Sedimentation:        %.3f S\n", sed.Svedberg)
	fmt.Printf("Velocity:             %.4g mm/s\n", v.MMPerSecond)
	fmt.Printf("Distance in %.0f min:   %.3f mm\n", sedMinutes, v.DistanceMM)
	return nil
}
