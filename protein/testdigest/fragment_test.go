package testdigest

import (
	"testing"

	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/spectra"
	"github.com/stretchr/testify/assert"
)

func TestBYFragmenterGeneratesBAndYSeries(t *testing.T) {
	pep := &protein.PeptideWithSetModifications{BaseSequence: "PEP", Length: 3}
	var products []protein.Product
	BYFragmenter{}.Fragment(pep, spectra.HCD, protein.TerminusBoth, &products)

	var bCount, yCount int
	for _, p := range products {
		switch p.Type {
		case protein.ProductB:
			bCount++
		case protein.ProductY:
			yCount++
		}
	}
	// A 3-residue peptide yields 2 b-ions and 2 y-ions.
	assert.Equal(t, 2, bCount)
	assert.Equal(t, 2, yCount)
}

func TestBYFragmenterRestrictsToTerminus(t *testing.T) {
	pep := &protein.PeptideWithSetModifications{BaseSequence: "PEP", Length: 3}

	var bOnly []protein.Product
	BYFragmenter{}.Fragment(pep, spectra.HCD, protein.TerminusN, &bOnly)
	for _, p := range bOnly {
		assert.Equal(t, protein.ProductB, p.Type)
	}

	var yOnly []protein.Product
	BYFragmenter{}.Fragment(pep, spectra.HCD, protein.TerminusC, &yOnly)
	for _, p := range yOnly {
		assert.Equal(t, protein.ProductY, p.Type)
	}
}

func TestBYFragmenterAccountsForModificationMass(t *testing.T) {
	ox := protein.Modification{Name: "Oxidation", MonoisotopicMass: 15.9949}
	unmodified := &protein.PeptideWithSetModifications{BaseSequence: "PEPTM", Length: 5}
	modified := &protein.PeptideWithSetModifications{
		BaseSequence:  "PEPTM",
		Length:        5,
		Modifications: map[int]protein.Modification{6: ox}, // M at 0-based index 4 -> position 6
	}

	var unmodProducts, modProducts []protein.Product
	BYFragmenter{}.Fragment(unmodified, spectra.HCD, protein.TerminusC, &unmodProducts)
	BYFragmenter{}.Fragment(modified, spectra.HCD, protein.TerminusC, &modProducts)

	// y1 is built from the C-terminal residue (M) outward, so it's the first
	// y-ion to pick up the modification mass.
	assert.InDelta(t, ox.MonoisotopicMass, modProducts[0].NeutralMass-unmodProducts[0].NeutralMass, 1e-9)
}
