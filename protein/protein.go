// Package protein defines the sequence-side data model consumed by the
// search and GPTMD engines: Protein, Modification, PeptideWithSetModifications,
// and the MassDiffAcceptor contract.
package protein

import (
	"strconv"
	"strings"
)

// Protein is a row of the sequence database being searched.
type Protein struct {
	Accession    string
	BaseSequence string
	IsDecoy      bool

	// BaseProtein is set on variant proteins; it is only used for accession
	// lookup. GPTMD records modifications under the peptide's own Protein
	// accession and does not follow BaseProtein.
	BaseProtein *Protein
}

// Length returns the number of residues in the protein.
func (p *Protein) Length() int { return len(p.BaseSequence) }

// LocationRestriction constrains where in a protein/peptide a Modification
// may be placed.
type LocationRestriction int

const (
	Anywhere LocationRestriction = iota
	NTerminal
	CTerminal
	PeptideNTerminal
	PeptideCTerminal
)

// Modification is a post-translational modification: a mass delta anchored
// to a sequence motif, subject to a location restriction.
//
// Motif syntax: the single upper-case letter is the anchor residue; any
// lower-case letters are required flanking context; 'X' (either case)
// matches any residue.
type Modification struct {
	Name                string
	Motif               string
	MonoisotopicMass    float64
	LocationRestriction LocationRestriction
	Valid               bool
}

// SilacLabel and TurnoverLabel are opaque pass-through parameters consumed
// by the external Digester; the core never inspects their contents.
type SilacLabel struct{ Name string }
type TurnoverLabel struct{ Name string }

// DigestionParams configures the external Digester (protease, missed
// cleavages, length bounds, etc.) — the core treats it as an opaque bag of
// parameters it passes through.
type DigestionParams struct {
	Protease          string
	MaxMissedCleavages int
	MinPeptideLength  int
	MaxPeptideLength  int
}

// PeptideWithSetModifications is one digestion product with a concrete
// modification assignment — the unit that gets fragmented and scored against
// a scan.
//
// Modifications maps a 1-based position in the augmented frame (N-terminus =
// 1, residue i = i+1, C-terminus = length+2) to the Modification placed
// there.
type PeptideWithSetModifications struct {
	Protein          *Protein
	OneBasedStart    int
	BaseSequence     string
	Length           int
	MonoisotopicMass float64
	Modifications    map[int]Modification
}

// FullSequence renders a canonical string identity for this peptide,
// combining the base sequence with its modification set — used as the
// grouping key in FDR's peptide counting and fractional decoy crediting.
func (p *PeptideWithSetModifications) FullSequence() string {
	if len(p.Modifications) == 0 {
		return p.BaseSequence
	}
	var b strings.Builder
	b.WriteString(p.BaseSequence)
	for pos := 1; pos <= p.Length+2; pos++ {
		if mod, ok := p.Modifications[pos]; ok {
			b.WriteByte('[')
			b.WriteString(mod.Name)
			b.WriteByte('@')
			b.WriteString(strconv.Itoa(pos))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// OneBasedEnd returns the protein-coordinate position of the peptide's last
// residue.
func (p *PeptideWithSetModifications) OneBasedEnd() int {
	return p.OneBasedStart + p.Length - 1
}
