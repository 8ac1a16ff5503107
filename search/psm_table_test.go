package search

import (
	"testing"

	"github.com/grailbio/ms2search/protein"
	"github.com/stretchr/testify/assert"
)

func pep(accession, seq string) *protein.PeptideWithSetModifications {
	return &protein.PeptideWithSetModifications{
		Protein:      &protein.Protein{Accession: accession},
		BaseSequence: seq,
		Length:       len(seq),
	}
}

func TestAddCandidateBelowCutoffIsDropped(t *testing.T) {
	table := newPSMTable(1)
	table.addCandidate(0, 1, 0, 800, "trypsin", 1.0, pep("P1", "AAA"), nil, 5.0, true)
	assert.Nil(t, table.slots[0])
}

func TestAddCandidateCreatesFirstSlot(t *testing.T) {
	table := newPSMTable(1)
	table.addCandidate(0, 1, 0, 800, "trypsin", 6.0, pep("P1", "AAA"), nil, 5.0, true)
	assert.NotNil(t, table.slots[0])
	assert.Equal(t, 6.0, table.slots[0].BestScore)
	assert.Equal(t, "trypsin", table.slots[0].Protease)
	assert.Equal(t, 800.0, table.slots[0].PrecursorMass)
}

func TestAddCandidateFoldsIntoExisting(t *testing.T) {
	table := newPSMTable(1)
	table.addCandidate(0, 1, 0, 800, "trypsin", 6.0, pep("P1", "AAA"), nil, 5.0, true)
	table.addCandidate(0, 1, 0, 800, "trypsin", 9.0, pep("P2", "BBB"), nil, 5.0, true)

	assert.Equal(t, 9.0, table.slots[0].BestScore)
	assert.Equal(t, 6.0, table.slots[0].RunnerUpScore)
}

func TestFinalizeResolvesAmbiguityAndLeavesEmptySlotsNil(t *testing.T) {
	table := newPSMTable(2)
	table.addCandidate(0, 1, 0, 800, "trypsin", 6.0, pep("P1", "BBB"), nil, 5.0, true)
	table.addCandidate(0, 1, 0, 800, "trypsin", 6.0, pep("P2", "AAA"), nil, 5.0, true)

	out := table.finalize()
	assert.Len(t, out, 2)
	assert.Nil(t, out[1])
	assert.Equal(t, "AAA", out[0].Canonical().FullSequence())
}
