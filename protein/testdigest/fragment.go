package testdigest

import (
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/spectra"
)

const protonMass = 1.00727646688

// BYFragmenter generates the b and y ion series; it ignores dissociation
// type and fragmentation terminus beyond TerminusN/TerminusC filtering,
// which is enough to exercise MatchFragmentIons and CalculatePeptideScore
// in tests without a real fragmentation engine.
type BYFragmenter struct{}

func (BYFragmenter) Fragment(p *protein.PeptideWithSetModifications, diss spectra.DissociationType, terminus protein.FragmentationTerminus, out *[]protein.Product) {
	seq := p.BaseSequence
	if terminus != protein.TerminusC {
		var running float64
		for i := 0; i < len(seq)-1; i++ {
			running += residueMass[seq[i]] + modMassAt(p, i+2)
			*out = append(*out, protein.Product{Type: protein.ProductB, FragmentNumber: i + 1, NeutralMass: running + protonMass})
		}
	}
	if terminus != protein.TerminusN {
		var running float64
		for i := len(seq) - 1; i > 0; i-- {
			running += residueMass[seq[i]] + modMassAt(p, i+2)
			*out = append(*out, protein.Product{Type: protein.ProductY, FragmentNumber: len(seq) - i, NeutralMass: running + waterMass + protonMass})
		}
	}
}

func modMassAt(p *protein.PeptideWithSetModifications, pos int) float64 {
	if mod, ok := p.Modifications[pos]; ok {
		return mod.MonoisotopicMass
	}
	return 0
}
