package gptmd

import (
	"strings"

	"github.com/grailbio/ms2search/protein"
)

// modFits checks that mod's motif aligns against protein's sequence at
// protein_position, and that mod's location restriction is satisfied given
// where in the peptide protein_position falls.
func modFits(mod protein.Modification, prot *protein.Protein, peptidePosition, peptideLength, proteinPosition int) bool {
	if !motifMatches(mod, prot, proteinPosition) {
		return false
	}
	return locationRestrictionSatisfied(mod, prot, peptidePosition, peptideLength, proteinPosition)
}

func motifMatches(mod protein.Modification, prot *protein.Protein, proteinPosition int) bool {
	anchor := anchorIndex(mod.Motif)
	offset := proteinPosition - anchor - 1
	seq := prot.BaseSequence
	for j := 0; j < len(mod.Motif); j++ {
		p := j + offset
		if p < 0 || p >= len(seq) {
			return false
		}
		c := mod.Motif[j]
		if c != 'X' && c != 'x' && !strings.EqualFold(string(c), string(seq[p])) {
			return false
		}
	}
	return true
}

// anchorIndex returns the index of the motif's single upper-case anchor
// character.
func anchorIndex(motif string) int {
	for i := 0; i < len(motif); i++ {
		c := motif[i]
		if c >= 'A' && c <= 'Z' {
			return i
		}
	}
	return 0
}

func locationRestrictionSatisfied(mod protein.Modification, prot *protein.Protein, peptidePosition, peptideLength, proteinPosition int) bool {
	switch mod.LocationRestriction {
	case protein.Anywhere:
		return true
	case protein.NTerminal:
		return proteinPosition <= 2
	case protein.CTerminal:
		return proteinPosition == prot.Length()
	case protein.PeptideNTerminal:
		return peptidePosition == 1
	case protein.PeptideCTerminal:
		return peptidePosition == peptideLength
	default:
		return false
	}
}
