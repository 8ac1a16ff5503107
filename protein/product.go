package protein

import "github.com/grailbio/ms2search/spectra"

// ProductType is the ion series a theoretical fragment belongs to (b, y, c,
// z, etc. — the exact label set is a property of the configured
// Fragmenter/dissociation type, not of this package).
type ProductType int

const (
	ProductB ProductType = iota
	ProductY
	ProductC
	ProductZDot
)

// FragmentationTerminus restricts fragment generation to N-terminal ions,
// C-terminal ions, or both.
type FragmentationTerminus int

const (
	TerminusBoth FragmentationTerminus = iota
	TerminusN
	TerminusC
)

// Product is one theoretical fragment ion produced by Fragmenter.Fragment.
type Product struct {
	Type             ProductType
	FragmentNumber   int
	NeutralMass      float64
}

// Digester is the consumed interface for peptide digestion. The real
// digestion engine (enzymatic cleavage rules, missed-cleavage enumeration,
// modification placement) is explicitly out of scope for this module;
// callers supply a concrete Digester.
type Digester interface {
	Digest(p *Protein, params DigestionParams, fixed, variable []Modification, silac []SilacLabel, turnover []TurnoverLabel) []*PeptideWithSetModifications
}

// Fragmenter is the consumed interface for theoretical fragmentation.
// Implementations append theoretical product ions to out; the core never
// generates ion series itself.
type Fragmenter interface {
	Fragment(p *PeptideWithSetModifications, diss spectra.DissociationType, terminus FragmentationTerminus, out *[]Product)
}

// DecoyGenerator is the consumed interface for reverse/scrambled decoy
// construction.
type DecoyGenerator interface {
	ReverseDecoy(target *PeptideWithSetModifications) (decoy *PeptideWithSetModifications, newAALocations []int)
	ScrambledDecoy(target *PeptideWithSetModifications) (decoy *PeptideWithSetModifications, newAALocations []int)
}
