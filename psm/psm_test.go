package psm

import (
	"testing"

	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/scoring"
	"github.com/stretchr/testify/assert"
)

func targetPeptide(accession, seq string) *protein.PeptideWithSetModifications {
	return &protein.PeptideWithSetModifications{
		Protein:      &protein.Protein{Accession: accession},
		BaseSequence: seq,
		Length:       len(seq),
	}
}

func decoyPeptide(accession, seq string) *protein.PeptideWithSetModifications {
	return &protein.PeptideWithSetModifications{
		Protein:      &protein.Protein{Accession: accession, IsDecoy: true},
		BaseSequence: seq,
		Length:       len(seq),
	}
}

func TestNewPSM(t *testing.T) {
	pep := targetPeptide("P1", "PEPTIDE")
	p := NewPSM(0, 101, 0, 800.5, "trypsin", 5.0, pep, nil)
	assert.Equal(t, 0, p.ScanIndex)
	assert.Equal(t, 101, p.ScanNumber)
	assert.Equal(t, 800.5, p.PrecursorMass)
	assert.Equal(t, "trypsin", p.Protease)
	assert.Equal(t, 5.0, p.BestScore)
	assert.Equal(t, 0.0, p.RunnerUpScore)
	assert.Equal(t, []*protein.PeptideWithSetModifications{pep}, p.BestPeptides)
}

func TestIsDecoyAllDecoy(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, decoyPeptide("DECOY_P1", "PEPTIDE"), nil)
	assert.True(t, p.IsDecoy())
}

func TestIsDecoyMixedIsNotDecoy(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "PEPTIDE"), nil)
	p.AddOrReplace(decoyPeptide("DECOY_P1", "PEPTIDE"), 5, 0, true, nil)
	assert.False(t, p.IsDecoy())
}

func TestHasAnyDecoyAllTargetIsFalse(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "PEPTIDE"), nil)
	assert.False(t, p.HasAnyDecoy())
}

func TestHasAnyDecoyMixedIsTrue(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "PEPTIDE"), nil)
	p.AddOrReplace(decoyPeptide("DECOY_P1", "PEPTIDE"), 5, 0, true, nil)
	assert.True(t, p.HasAnyDecoy())
	assert.False(t, p.IsDecoy()) // mixed: HasAnyDecoy true, IsDecoy false
}

func TestHasAnyDecoyAllDecoyIsTrue(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, decoyPeptide("DECOY_P1", "PEPTIDE"), nil)
	assert.True(t, p.HasAnyDecoy())
	assert.True(t, p.IsDecoy())
}

func TestAddOrReplaceNewBest(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "AAA"), nil)
	better := targetPeptide("P2", "BBB")
	p.AddOrReplace(better, 8, 1, true, nil)

	assert.Equal(t, 8.0, p.BestScore)
	assert.Equal(t, 5.0, p.RunnerUpScore)
	assert.Equal(t, 1, p.Notch)
	assert.Equal(t, []*protein.PeptideWithSetModifications{better}, p.BestPeptides)
}

func TestAddOrReplaceTieGrowsAmbiguitySet(t *testing.T) {
	first := targetPeptide("P1", "AAA")
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, first, nil)
	tied := targetPeptide("P2", "BBB")
	p.AddOrReplace(tied, 5+ScoreTolerance/2, 0, true, nil)

	assert.Equal(t, 5.0, p.BestScore)
	assert.Len(t, p.BestPeptides, 2)
}

func TestAddOrReplaceTieWithoutReportAmbiguityDoesNotGrowSet(t *testing.T) {
	first := targetPeptide("P1", "AAA")
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, first, nil)
	tied := targetPeptide("P2", "BBB")
	p.AddOrReplace(tied, 5, 0, false, nil)

	assert.Len(t, p.BestPeptides, 1)
}

func TestAddOrReplaceWorseUpdatesRunnerUpOnly(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 10, targetPeptide("P1", "AAA"), nil)
	p.AddOrReplace(targetPeptide("P2", "BBB"), 3, 0, true, nil)

	assert.Equal(t, 10.0, p.BestScore)
	assert.Equal(t, 3.0, p.RunnerUpScore)
	assert.Len(t, p.BestPeptides, 1)
}

func TestResolveAmbiguityAndCanonical(t *testing.T) {
	a := targetPeptide("P1", "BBB")
	b := targetPeptide("P2", "AAA")
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, a, nil)
	p.AddOrReplace(b, 5, 0, true, nil)

	p.ResolveAmbiguity()
	assert.Equal(t, "AAA", p.Canonical().FullSequence())
}

func TestCanonicalWithoutResolveReturnsFirst(t *testing.T) {
	a := targetPeptide("P1", "AAA")
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, a, nil)
	assert.Equal(t, a, p.Canonical())
}

func TestFullSequenceAmbiguous(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "AAA"), nil)
	assert.False(t, p.FullSequenceAmbiguous())

	p.AddOrReplace(targetPeptide("P2", "BBB"), 5, 0, true, nil)
	assert.True(t, p.FullSequenceAmbiguous())
}

func TestFullSequenceAmbiguousSameSequenceDifferentAccessionIsNotAmbiguous(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "AAA"), nil)
	p.AddOrReplace(targetPeptide("P2", "AAA"), 5, 0, true, nil)
	assert.False(t, p.FullSequenceAmbiguous())
}

func TestDistinctFullSequencePeptidesDedupsAndSorts(t *testing.T) {
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, targetPeptide("P1", "BBB"), nil)
	p.AddOrReplace(targetPeptide("P2", "BBB"), 5, 0, true, nil)
	p.AddOrReplace(targetPeptide("P3", "AAA"), 5, 0, true, nil)

	distinct := p.DistinctFullSequencePeptides()
	assert.Len(t, distinct, 2)
	assert.Equal(t, "AAA", distinct[0].FullSequence())
	assert.Equal(t, "BBB", distinct[1].FullSequence())
}

func TestMatchedIonsPerPeptideTracksBestPeptide(t *testing.T) {
	ions := []scoring.MatchedFragmentIon{{ObservedMZ: 100}}
	pep := targetPeptide("P1", "AAA")
	p := NewPSM(0, 1, 0, 800, "trypsin", 5, pep, ions)
	assert.Equal(t, ions, p.MatchedIonsPerPeptide[pep])
}
