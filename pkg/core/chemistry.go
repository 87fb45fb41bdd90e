// Package core provides the amino-acid property table and sequence-derived physical properties
package core

// Physical constants
const (
	Avogadro = 6.02214076e23

	// Average mass of the water lost per peptide bond (Da)
	WaterMass = 18.015
	// Electrons in one water molecule
	WaterElectrons = 10

	// Refractive index increment (mL/g); composition independent
	DnDc = 0.185

	// Molar extinction contributions at 280 nm (M^-1 cm^-1)
	ExtinctionTrp     = 5500
	ExtinctionTyr     = 1490
	ExtinctionCystine = 125
)

// Atomic numbers used for electron counting
const (
	ElectronsH = 1
	ElectronsC = 6
	ElectronsN = 7
	ElectronsO = 8
	ElectronsS = 16
)

// AminoAcidComposition stores elemental composition of a free amino acid
type AminoAcidComposition struct {
	C, H, N, O, S int
}

// Electrons returns the total electron count of the composition
func (c AminoAcidComposition) Electrons() int {
	return c.C*ElectronsC + c.H*ElectronsH + c.N*ElectronsN + c.O*ElectronsO + c.S*ElectronsS
}

// AminoAcid holds the tabulated properties of one residue type.
type AminoAcid struct {
	Code        rune
	Name        string
	Mass        float64 // average mass of the free amino acid (Da)
	Volume      float64 // residue volume (Å³)
	Composition AminoAcidComposition
}

// Electrons returns the electron count of the free amino acid
func (a AminoAcid) Electrons() int {
	return a.Composition.Electrons()
}

// AminoAcids maps one-letter codes to residue properties. Read-only.
var AminoAcids = map[rune]AminoAcid{
	'A': {'A', "Alanine", 89.09, 88.6, AminoAcidComposition{C: 3, H: 7, N: 1, O: 2}},
	'R': {'R', "Arginine", 174.20, 173.4, AminoAcidComposition{C: 6, H: 14, N: 4, O: 2}},
	'N': {'N', "Asparagine", 132.12, 114.1, AminoAcidComposition{C: 4, H: 8, N: 2, O: 3}},
	'D': {'D', "Aspartic acid", 133.10, 111.1, AminoAcidComposition{C: 4, H: 7, N: 1, O: 4}},
	'C': {'C', "Cysteine", 121.16, 108.5, AminoAcidComposition{C: 3, H: 7, N: 1, O: 2, S: 1}},
	'Q': {'Q', "Glutamine", 146.15, 143.8, AminoAcidComposition{C: 5, H: 10, N: 2, O: 3}},
	'E': {'E', "Glutamic acid", 147.13, 138.4, AminoAcidComposition{C: 5, H: 9, N: 1, O: 4}},
	'G': {'G', "Glycine", 75.07, 60.1, AminoAcidComposition{C: 2, H: 5, N: 1, O: 2}},
	'H': {'H', "Histidine", 155.16, 153.2, AminoAcidComposition{C: 6, H: 9, N: 3, O: 2}},
	'I': {'I', "Isoleucine", 131.17, 166.7, AminoAcidComposition{C: 6, H: 13, N: 1, O: 2}},
	'L': {'L', "Leucine", 131.17, 166.7, AminoAcidComposition{C: 6, H: 13, N: 1, O: 2}},
	'K': {'K', "Lysine", 146.19, 168.6, AminoAcidComposition{C: 6, H: 14, N: 2, O: 2}},
	'M': {'M', "Methionine", 149.21, 162.9, AminoAcidComposition{C: 5, H: 11, N: 1, O: 2, S: 1}},
	'F': {'F', "Phenylalanine", 165.19, 189.9, AminoAcidComposition{C: 9, H: 11, N: 1, O: 2}},
	'P': {'P', "Proline", 115.13, 112.7, AminoAcidComposition{C: 5, H: 9, N: 1, O: 2}},
	'S': {'S', "Serine", 105.09, 89.0, AminoAcidComposition{C: 3, H: 7, N: 1, O: 3}},
	'T': {'T', "Threonine", 119.12, 116.1, AminoAcidComposition{C: 4, H: 9, N: 1, O: 3}},
	'W': {'W', "Tryptophan", 204.23, 227.8, AminoAcidComposition{C: 11, H: 12, N: 2, O: 2}},
	'Y': {'Y', "Tyrosine", 181.19, 193.6, AminoAcidComposition{C: 9, H: 11, N: 1, O: 3}},
	'V': {'V', "Valine", 117.15, 140.0, AminoAcidComposition{C: 5, H: 11, N: 1, O: 2}},
}

// ResidueCodes lists the table keys in a fixed order, used wherever sums must be reproducible.
var ResidueCodes = []rune("ACDEFGHIKLMNPQRSTVWY")

// IsResidue reports whether r is one of the 20 standard one-letter codes
func IsResidue(r rune) bool {
	_, ok := AminoAcids[r]
	return ok
}
