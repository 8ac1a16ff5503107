// Package search implements the Classic Search Engine: protein-parallel
// digestion, fragmentation, and spectrum scoring with on-the-fly decoy
// generation.
package search

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/grailbio/ms2search/spectra"
)

// ScoreTolerance is the tie-coalescing window used throughout scoring and
// FDR. It is psm.ScoreTolerance re-exported under the search package's name.
const ScoreTolerance = psm.ScoreTolerance

// DecoySimilarityThreshold is the bound above which a generated reverse
// decoy is considered too similar to its target and is rescrambled.
const DecoySimilarityThreshold = 0.3

// CommonParams bundles the engine-wide configuration shared across files in
// a search.
type CommonParams struct {
	MaxThreadsPerFile int
	ScoreCutoff       float64
	// ProductMassTolerance governs fragment-ion matching.
	ProductMassTolerance spectra.Tolerance
	// DissociationType is the configured fragmentation method;
	// spectra.Autodetect defers to each scan's own DissociationType.
	DissociationType spectra.DissociationType
	// FragmentsCanHaveDifferentCharges, when true, lets MatchFragmentIons
	// attempt every plausible charge state.
	FragmentsCanHaveDifferentCharges bool
	// ReportAmbiguity controls whether tied best-scoring peptides accumulate
	// in a PSM's BestPeptides set.
	ReportAmbiguity bool
}

// SpectralLibrary is the minimal collaborator interface the engine needs to
// restrict candidates to a known library; a real spectral-angle library
// lives outside this module's scope. When configured and DecoyOnTheFly is
// off, the engine only records a target (and its paired decoy) whose full
// sequence Contains reports present; with DecoyOnTheFly on, the library is
// not consulted.
type SpectralLibrary interface {
	Contains(peptideFullSequence string) bool
}

// Opts bundles the immutable inputs to one ClassicSearchEngine run.
type Opts struct {
	Proteins         []*protein.Protein
	Scans            *spectra.ScanCollection
	FixedMods        []protein.Modification
	VariableMods     []protein.Modification
	SilacLabels      []protein.SilacLabel
	TurnoverLabels   []protein.TurnoverLabel
	DigestionParams  protein.DigestionParams
	MassDiffAcceptor protein.MassDiffAcceptor
	CommonParams     CommonParams

	Digester       protein.Digester
	Fragmenter     protein.Fragmenter
	DecoyGenerator protein.DecoyGenerator

	SpectralLibrary SpectralLibrary
	DecoyOnTheFly   bool

	Progress ProgressSink
}

// Validate fails fast at engine construction, before any work is scheduled.
func (o *Opts) Validate() error {
	if o.CommonParams.MaxThreadsPerFile <= 0 {
		return errors.E("search: MaxThreadsPerFile must be positive")
	}
	if o.Scans == nil {
		return errors.E("search: Scans must not be nil")
	}
	if o.MassDiffAcceptor == nil {
		return errors.E("search: MassDiffAcceptor must not be nil")
	}
	if o.Digester == nil || o.Fragmenter == nil {
		return errors.E("search: Digester and Fragmenter must be set (file-format/engine collaborators are out of scope for this module)")
	}
	if o.DigestionParams.Protease == "" {
		return errors.E("search: DigestionParams.Protease must be set")
	}
	if (o.DecoyOnTheFly || o.SpectralLibrary != nil) && o.DecoyGenerator == nil {
		return errors.E("search: DecoyGenerator must be set when DecoyOnTheFly or a SpectralLibrary is configured")
	}
	return nil
}
