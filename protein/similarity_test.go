package protein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceSimilarityIdentical(t *testing.T) {
	target := &PeptideWithSetModifications{BaseSequence: "PEPTIDE"}
	decoy := &PeptideWithSetModifications{BaseSequence: "PEPTIDE"}
	assert.Equal(t, 1.0, SequenceSimilarity(target, decoy))
}

func TestSequenceSimilarityReversed(t *testing.T) {
	target := &PeptideWithSetModifications{BaseSequence: "PEPTIDE"}
	decoy := &PeptideWithSetModifications{BaseSequence: "EDITPEP"}
	sim := SequenceSimilarity(target, decoy)
	assert.True(t, sim >= 0 && sim < 1)
}

func TestSequenceSimilarityModificationMismatchDoesNotCount(t *testing.T) {
	mod := Modification{Name: "Oxidation", Motif: "M", MonoisotopicMass: 15.9949}
	target := &PeptideWithSetModifications{
		BaseSequence:  "PEPTMDE",
		Modifications: map[int]Modification{6: mod},
	}
	decoy := &PeptideWithSetModifications{
		BaseSequence: "PEPTMDE",
	}
	// Position 5 (0-based index 4, augmented position 6) matches on residue
	// but target carries a modification the decoy lacks, so it should not count.
	sim := SequenceSimilarity(target, decoy)
	assert.InDelta(t, 6.0/7.0, sim, 1e-9)
}

func TestSequenceSimilarityPanicsOnLengthMismatch(t *testing.T) {
	target := &PeptideWithSetModifications{BaseSequence: "PEPTIDE"}
	decoy := &PeptideWithSetModifications{BaseSequence: "SHORT"}
	assert.Panics(t, func() { SequenceSimilarity(target, decoy) })
}
