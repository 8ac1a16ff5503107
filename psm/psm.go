// Package psm defines PeptideSpectralMatch and FdrInfo, the mutable records
// the search, FDR, and GPTMD engines share and mutate in place.
package psm

import (
	"sort"

	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/scoring"
)

// ScoreTolerance is the tie-coalescing window used throughout the search
// and FDR engines.
const ScoreTolerance = 1e-3

// FdrInfo is populated by the FDR Analysis Engine and left empty until then.
type FdrInfo struct {
	CumulativeTarget      float64
	CumulativeDecoy       float64
	QValue                float64
	CumulativeTargetNotch float64
	CumulativeDecoyNotch  float64
	QValueNotch           float64
	PEP                   float64
	PEPQValue             float64
}

// PeptideSpectralMatch is one hypothesis pairing a spectrum with one or more
// tied-best peptides.
type PeptideSpectralMatch struct {
	ScanIndex     int
	ScanNumber    int
	Notch         int
	PrecursorMass float64

	// Protease is the digestion protease used to generate this PSM's
	// candidate peptides; FDR analysis partitions by it, since targets and
	// decoys must come from the same enzymatic context.
	Protease string

	BestScore     float64
	RunnerUpScore float64

	// BestPeptides holds every peptide tied within ScoreTolerance of
	// BestScore; ambiguity is only grown here when reportAmbiguity is true.
	BestPeptides          []*protein.PeptideWithSetModifications
	MatchedIonsPerPeptide map[*protein.PeptideWithSetModifications][]scoring.MatchedFragmentIon

	FullFilePath string

	FdrInfo *FdrInfo

	// canonical is the representative peptide chosen by
	// ResolveAmbiguity; nil until finalization runs.
	canonical *protein.PeptideWithSetModifications
}

// NewPSM creates a PSM with a single best peptide.
func NewPSM(scanIndex, scanNumber, notch int, precursorMass float64, protease string, score float64, pep *protein.PeptideWithSetModifications, ions []scoring.MatchedFragmentIon) *PeptideSpectralMatch {
	p := &PeptideSpectralMatch{
		ScanIndex:             scanIndex,
		ScanNumber:            scanNumber,
		Notch:                 notch,
		PrecursorMass:         precursorMass,
		Protease:              protease,
		BestScore:             score,
		RunnerUpScore:         0,
		BestPeptides:          []*protein.PeptideWithSetModifications{pep},
		MatchedIonsPerPeptide: map[*protein.PeptideWithSetModifications][]scoring.MatchedFragmentIon{pep: ions},
	}
	return p
}

// IsDecoy is derived: true iff every peptide in BestPeptides is decoy.
func (p *PeptideSpectralMatch) IsDecoy() bool {
	if len(p.BestPeptides) == 0 {
		return false
	}
	for _, pep := range p.BestPeptides {
		if !pep.Protein.IsDecoy {
			return false
		}
	}
	return true
}

// HasAnyDecoy reports whether at least one peptide in BestPeptides is decoy
// — true for a PSM whose tied-best set mixes target and decoy peptides, not
// just one that is entirely decoy.
func (p *PeptideSpectralMatch) HasAnyDecoy() bool {
	for _, pep := range p.BestPeptides {
		if pep.Protein.IsDecoy {
			return true
		}
	}
	return false
}

// AddOrReplace takes a new candidate peptide scoring `score` at `notch` and
// updates this PSM's best/runner-up state, growing the tied-best set when
// reportAmbiguity is true.
func (p *PeptideSpectralMatch) AddOrReplace(pep *protein.PeptideWithSetModifications, score float64, notch int, reportAmbiguity bool, ions []scoring.MatchedFragmentIon) {
	switch {
	case score > p.BestScore+ScoreTolerance:
		p.RunnerUpScore = p.BestScore
		p.BestScore = score
		p.Notch = notch
		p.BestPeptides = []*protein.PeptideWithSetModifications{pep}
		p.MatchedIonsPerPeptide = map[*protein.PeptideWithSetModifications][]scoring.MatchedFragmentIon{pep: ions}
	case score >= p.BestScore-ScoreTolerance && score <= p.BestScore+ScoreTolerance:
		if reportAmbiguity {
			p.BestPeptides = append(p.BestPeptides, pep)
			p.MatchedIonsPerPeptide[pep] = ions
		}
		if score > p.RunnerUpScore {
			p.RunnerUpScore = score
		}
	default:
		if score > p.RunnerUpScore {
			p.RunnerUpScore = score
		}
	}
}

// ResolveAmbiguity collapses the tied best-peptide set to a single canonical
// representative, chosen deterministically (lexicographically smallest full
// sequence string, ties broken by protein accession) while retaining the
// full set for ambiguity reporting.
func (p *PeptideSpectralMatch) ResolveAmbiguity() {
	if len(p.BestPeptides) == 0 {
		return
	}
	canonical := p.BestPeptides[0]
	for _, pep := range p.BestPeptides[1:] {
		if betterCanonical(pep, canonical) {
			canonical = pep
		}
	}
	p.canonical = canonical
}

func betterCanonical(a, b *protein.PeptideWithSetModifications) bool {
	if a.FullSequence() != b.FullSequence() {
		return a.FullSequence() < b.FullSequence()
	}
	return a.Protein.Accession < b.Protein.Accession
}

// Canonical returns the representative peptide chosen by ResolveAmbiguity,
// or the sole peptide if there is no ambiguity to resolve.
func (p *PeptideSpectralMatch) Canonical() *protein.PeptideWithSetModifications {
	if p.canonical != nil {
		return p.canonical
	}
	if len(p.BestPeptides) > 0 {
		return p.BestPeptides[0]
	}
	return nil
}

// FullSequenceAmbiguous reports whether this PSM's tied-best set spans more
// than one distinct full sequence; unambiguous PSMs are the ones peptide
// counting credits.
func (p *PeptideSpectralMatch) FullSequenceAmbiguous() bool {
	if len(p.BestPeptides) < 2 {
		return false
	}
	first := p.BestPeptides[0].FullSequence()
	for _, pep := range p.BestPeptides[1:] {
		if pep.FullSequence() != first {
			return true
		}
	}
	return false
}

// DistinctFullSequencePeptides returns the set of distinct full-sequence
// peptides among BestPeptides, sorted for determinism — used by FDR's
// fractional decoy-credit rule (decoy_hits / total_hits).
func (p *PeptideSpectralMatch) DistinctFullSequencePeptides() []*protein.PeptideWithSetModifications {
	seen := map[string]*protein.PeptideWithSetModifications{}
	for _, pep := range p.BestPeptides {
		fs := pep.FullSequence()
		if _, ok := seen[fs]; !ok {
			seen[fs] = pep
		}
	}
	out := make([]*protein.PeptideWithSetModifications, 0, len(seen))
	for _, pep := range seen {
		out = append(out, pep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullSequence() < out[j].FullSequence() })
	return out
}
