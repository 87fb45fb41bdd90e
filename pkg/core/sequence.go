package core

import (
	"math"
	"sort"
	"strings"
)

// ParsedSequence is the result of cleaning and classifying a raw sequence string.
type ParsedSequence struct {
	Cleaned      string       // uppercased, A-Z only
	Length       int          // number of valid residues
	Composition  map[rune]int // residue code -> count
	InvalidChars []rune       // letters that are not residue codes, deduplicated
	IsValid      bool
}

// ParseSequence uppercases raw, drops every character outside A-Z and counts residues.
func ParseSequence(raw string) ParsedSequence {
	var cleaned strings.Builder
	comp := make(map[rune]int)
	seen := make(map[rune]bool)
	var invalid []rune
	length := 0

	for _, r := range strings.ToUpper(raw) {
		if r < 'A' || r > 'Z' {
			continue
		}
		cleaned.WriteRune(r)
		if IsResidue(r) {
			comp[r]++
			length++
			continue
		}
		if !seen[r] {
			seen[r] = true
			invalid = append(invalid, r)
		}
	}

	return ParsedSequence{
		Cleaned:      cleaned.String(),
		Length:       length,
		Composition:  comp,
		InvalidChars: invalid,
		IsValid:      len(invalid) == 0 && length > 0,
	}
}

// Extinction holds molar and mass extinction coefficients at 280 nm.
type Extinction struct {
	Molar       float64 // M^-1 cm^-1, per the requested cysteine state
	MolarOx     float64 // all cysteines paired as cystines
	MolarRed    float64 // all cysteines reduced
	MassCm2PerG float64 // cm²/g
	Abs01       float64 // absorbance of a 1 mg/mL solution, 1 cm path
}

// ResidueCount is one entry of a sorted composition listing.
type ResidueCount struct {
	Code    rune
	Name    string
	Count   int
	Percent float64
}

// ProteinAnalysis is the set of properties derived from a protein sequence.
type ProteinAnalysis struct {
	Sequence              string
	Length                int
	Composition           map[rune]int
	MolecularWeight       float64 // Da
	DryVolume             float64 // Å³
	Electrons             int
	Extinction            Extinction
	PartialSpecificVolume float64 // cm³/g
	RefractiveIncrement   float64 // mL/g
	ReducedCysteines      bool
}

// Residues returns the composition sorted by one-letter code.
func (p *ProteinAnalysis) Residues() []ResidueCount {
	out := make([]ResidueCount, 0, len(p.Composition))
	for code, n := range p.Composition {
		out = append(out, ResidueCount{
			Code:    code,
			Name:    AminoAcids[code].Name,
			Count:   n,
			Percent: 100 * float64(n) / float64(p.Length),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// AnalyzeProtein parses raw and derives mass, volume, electron count, extinction,
// partial specific volume and dn/dc. reducedCys disables cystine contributions.
func AnalyzeProtein(raw string, reducedCys bool) (*ProteinAnalysis, error) {
	parsed := ParseSequence(raw)
	if !parsed.IsValid {
		return nil, &SequenceError{
			Empty:   parsed.Length == 0,
			Invalid: parsed.InvalidChars,
		}
	}

	var mass, volume float64
	electrons := 0
	for _, code := range ResidueCodes {
		n := parsed.Composition[code]
		aa := AminoAcids[code]
		mass += aa.Mass * float64(n)
		volume += aa.Volume * float64(n)
		electrons += aa.Electrons() * n
	}

	// One water per peptide bond
	if parsed.Length > 1 {
		bonds := parsed.Length - 1
		mass -= float64(bonds) * WaterMass
		electrons -= bonds * WaterElectrons
	}

	result := &ProteinAnalysis{
		Sequence:              parsed.Cleaned,
		Length:                parsed.Length,
		Composition:           parsed.Composition,
		MolecularWeight:       mass,
		DryVolume:             volume,
		Electrons:             electrons,
		PartialSpecificVolume: volume * 1e-24 * Avogadro / mass,
		RefractiveIncrement:   DnDc,
		ReducedCysteines:      reducedCys,
	}
	result.Extinction = extinction(parsed.Composition, mass, reducedCys)

	return result, nil
}

func extinction(comp map[rune]int, mass float64, reducedCys bool) Extinction {
	base := float64(comp['W']*ExtinctionTrp + comp['Y']*ExtinctionTyr)
	cystines := math.Floor(float64(comp['C']) / 2)

	ext := Extinction{
		MolarOx:  base + cystines*ExtinctionCystine,
		MolarRed: base,
	}
	ext.Molar = ext.MolarOx
	if reducedCys {
		ext.Molar = ext.MolarRed
	}
	ext.MassCm2PerG = ext.Molar / mass * 1000
	ext.Abs01 = ext.Molar / mass
	return ext
}
