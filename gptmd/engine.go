package gptmd

import (
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/grailbio/ms2search/spectra"
)

// QValueNotchCutoff is the confidence bar applied before a PSM is allowed
// to contribute a candidate modification.
const QValueNotchCutoff = 0.05

// Opts bundles a GptmdEngine run's inputs.
type Opts struct {
	Mods                     []protein.Modification
	Combos                   []MassCombo
	FileToPrecursorTolerance map[string]spectra.Tolerance
	DefaultTolerance         spectra.Tolerance
}

// GptmdResults is returned by Run.
type GptmdResults struct {
	Mods      *ProteinModSet
	ModsAdded int
}

// GptmdEngine performs mass-diff-driven PTM discovery over a set of
// post-FDR PSMs.
type GptmdEngine struct {
	opts Opts
}

// NewGptmdEngine returns an engine over opts.
func NewGptmdEngine(opts Opts) *GptmdEngine {
	return &GptmdEngine{opts: opts}
}

// Run filters to confident, non-decoy targets, enumerates mass-explaining
// modifications per peptide, and records every placement that fits the
// owning protein.
func (e *GptmdEngine) Run(allPSMs []*psm.PeptideSpectralMatch) GptmdResults {
	mods := NewProteinModSet()
	added := 0

	for _, p := range allPSMs {
		if p == nil || p.FdrInfo == nil {
			continue
		}
		if p.FdrInfo.QValueNotch > QValueNotchCutoff || p.IsDecoy() {
			continue
		}
		tol := e.toleranceFor(p.FullFilePath)

		for _, pep := range p.BestPeptides {
			candidates := possibleMods(p.PrecursorMass, e.opts.Mods, e.opts.Combos, tol, pep)

			for _, mod := range candidates {
				for i := 0; i < pep.Length; i++ {
					proteinPosition := pep.OneBasedStart + i
					peptidePosition := i + 1
					if !modFits(mod, pep.Protein, peptidePosition, pep.Length, proteinPosition) {
						continue
					}
					if mods.Add(pep.Protein.Accession, proteinPosition, mod) {
						added++
					}
				}
			}
		}
	}

	return GptmdResults{Mods: mods, ModsAdded: added}
}

func (e *GptmdEngine) toleranceFor(filePath string) spectra.Tolerance {
	if tol, ok := e.opts.FileToPrecursorTolerance[filePath]; ok {
		return tol
	}
	return e.opts.DefaultTolerance
}
