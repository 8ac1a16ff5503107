// Package testdigest provides small, deterministic stand-ins for the
// digestion, fragmentation, and decoy-generation collaborators the search
// and GPTMD engines consume — not a real proteomics primitives library,
// just enough arithmetic to exercise the core engines in tests.
package testdigest

import "github.com/grailbio/ms2search/protein"

// residueMass is the monoisotopic mass table for the 20 standard amino
// acids, keyed by one-letter code.
var residueMass = map[byte]float64{
	'G': 57.02146, 'A': 71.03711, 'S': 87.03203, 'P': 97.05276,
	'V': 99.06841, 'T': 101.04768, 'C': 103.00919, 'L': 113.08406,
	'I': 113.08406, 'N': 114.04293, 'D': 115.02694, 'Q': 128.05858,
	'K': 128.09496, 'E': 129.04259, 'M': 131.04049, 'H': 137.05891,
	'F': 147.06841, 'R': 156.10111, 'Y': 163.06333, 'W': 186.07931,
}

const waterMass = 18.010565

// PeptideMass returns the neutral monoisotopic mass of an unmodified
// peptide: the sum of its residue masses plus one water.
func PeptideMass(seq string) float64 {
	mass := waterMass
	for i := 0; i < len(seq); i++ {
		mass += residueMass[seq[i]]
	}
	return mass
}

// TrypticDigester cleaves a protein after K or R (never before P), the same
// rule as a standard trypsin digest, and enumerates every peptide within
// [MinPeptideLength, MaxPeptideLength] allowing up to MaxMissedCleavages.
type TrypticDigester struct{}

func (TrypticDigester) Digest(
	p *protein.Protein,
	params protein.DigestionParams,
	fixed, variable []protein.Modification,
	silac []protein.SilacLabel,
	turnover []protein.TurnoverLabel,
) []*protein.PeptideWithSetModifications {
	seq := p.BaseSequence
	var cutSites []int
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if (c == 'K' || c == 'R') && (i+1 >= len(seq) || seq[i+1] != 'P') {
			cutSites = append(cutSites, i+1)
		}
	}
	bounds := append([]int{0}, cutSites...)
	if len(bounds) == 0 || bounds[len(bounds)-1] != len(seq) {
		bounds = append(bounds, len(seq))
	}

	var out []*protein.PeptideWithSetModifications
	for i := 0; i < len(bounds)-1; i++ {
		for missed := 0; missed <= params.MaxMissedCleavages && i+missed+1 < len(bounds); missed++ {
			start := bounds[i]
			end := bounds[i+missed+1]
			length := end - start
			if length < params.MinPeptideLength || (params.MaxPeptideLength > 0 && length > params.MaxPeptideLength) {
				continue
			}
			base := seq[start:end]
			mods := applyFixedMods(base, fixed)
			mass := PeptideMass(base)
			for _, m := range mods {
				mass += m.MonoisotopicMass
			}
			out = append(out, &protein.PeptideWithSetModifications{
				Protein:          p,
				OneBasedStart:    start + 1,
				BaseSequence:     base,
				Length:           length,
				MonoisotopicMass: mass,
				Modifications:    mods,
			})
		}
	}
	return out
}

// applyFixedMods places every fixed modification whose motif anchor matches
// somewhere in base, keyed by the augmented-frame position convention
// (N-terminus = 1, residue i = i+1, C-terminus = length+2).
func applyFixedMods(base string, fixed []protein.Modification) map[int]protein.Modification {
	mods := make(map[int]protein.Modification)
	for _, mod := range fixed {
		anchor := motifAnchor(mod.Motif)
		for i := 0; i < len(base); i++ {
			if base[i] == anchor {
				mods[i+2] = mod
			}
		}
	}
	return mods
}

// motifAnchor returns the motif's single upper-case anchor character,
// falling back to the first character for a motif with no upper-case run.
func motifAnchor(motif string) byte {
	for i := 0; i < len(motif); i++ {
		if motif[i] >= 'A' && motif[i] <= 'Z' {
			return motif[i]
		}
	}
	if len(motif) > 0 {
		return motif[0]
	}
	return 0
}
