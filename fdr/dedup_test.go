package fdr

import (
	"testing"

	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/stretchr/testify/assert"
)

func TestDedupKeyForIsDeterministic(t *testing.T) {
	pep := &protein.PeptideWithSetModifications{Protein: &protein.Protein{Accession: "P1"}, BaseSequence: "PEPTIDE", Length: 7}
	p := psm.NewPSM(0, 5, 0, 800, "trypsin", 10, pep, nil)
	p.FullFilePath = "a.raw"

	k1 := dedupKeyFor(p, 800)
	k2 := dedupKeyFor(p, 800)
	assert.Equal(t, k1, k2)
}

func TestDedupKeyForDiffersOnScanNumber(t *testing.T) {
	pep := &protein.PeptideWithSetModifications{Protein: &protein.Protein{Accession: "P1"}, BaseSequence: "PEPTIDE", Length: 7}
	p1 := psm.NewPSM(0, 5, 0, 800, "trypsin", 10, pep, nil)
	p1.FullFilePath = "a.raw"
	p2 := psm.NewPSM(0, 6, 0, 800, "trypsin", 10, pep, nil)
	p2.FullFilePath = "a.raw"

	assert.NotEqual(t, dedupKeyFor(p1, 800), dedupKeyFor(p2, 800))
}

func TestDedupKeyForDiffersOnPeptideMass(t *testing.T) {
	pep := &protein.PeptideWithSetModifications{Protein: &protein.Protein{Accession: "P1"}, BaseSequence: "PEPTIDE", Length: 7}
	p := psm.NewPSM(0, 5, 0, 800, "trypsin", 10, pep, nil)
	p.FullFilePath = "a.raw"

	assert.NotEqual(t, dedupKeyFor(p, 800), dedupKeyFor(p, 801))
}

func TestDedupKeyForDiffersOnFilePath(t *testing.T) {
	pep := &protein.PeptideWithSetModifications{Protein: &protein.Protein{Accession: "P1"}, BaseSequence: "PEPTIDE", Length: 7}
	p1 := psm.NewPSM(0, 5, 0, 800, "trypsin", 10, pep, nil)
	p1.FullFilePath = "a.raw"
	p2 := psm.NewPSM(0, 5, 0, 800, "trypsin", 10, pep, nil)
	p2.FullFilePath = "b.raw"

	assert.NotEqual(t, dedupKeyFor(p1, 800), dedupKeyFor(p2, 800))
}
