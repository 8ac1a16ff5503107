package search

import (
	"sync/atomic"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/grailbio/ms2search/scoring"
	"github.com/grailbio/ms2search/spectra"
)

// ClassicSearchEngine runs the protein-parallel digest/fragment/score loop:
// every peptide that digestion produces is scored against every scan its
// precursor mass could plausibly belong to, with an optional on-the-fly
// decoy generated per target.
type ClassicSearchEngine struct {
	opts Opts
}

// NewClassicSearchEngine validates opts and returns an engine ready to Run.
func NewClassicSearchEngine(opts Opts) (*ClassicSearchEngine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &ClassicSearchEngine{opts: opts}, nil
}

// EngineResults is returned by Run.
type EngineResults struct {
	// PSMs is indexed by scan_index, one slot per scan; an empty slot means
	// no peptide cleared the score cutoff for that scan.
	PSMs []*psm.PeptideSpectralMatch
}

// scratch is a worker's thread-local fragment buffer, keyed by dissociation
// type and kept cleared-not-reallocated across peptides so each worker
// reuses its own buffers instead of allocating fresh ones per peptide.
type scratch struct {
	targetProducts map[spectra.DissociationType][]protein.Product
	decoyProducts  map[spectra.DissociationType][]protein.Product
}

func newScratch() *scratch {
	return &scratch{
		targetProducts: make(map[spectra.DissociationType][]protein.Product),
		decoyProducts:  make(map[spectra.DissociationType][]protein.Product),
	}
}

func (s *scratch) clear() {
	for k := range s.targetProducts {
		s.targetProducts[k] = s.targetProducts[k][:0]
	}
	for k := range s.decoyProducts {
		s.decoyProducts[k] = s.decoyProducts[k][:0]
	}
}

// fragmentInto lazily fragments pep into the scratch slot for diss,
// fragmenting only once per (peptide, dissociation type) pair.
func (s *scratch) fragmentInto(store map[spectra.DissociationType][]protein.Product, fragmenter protein.Fragmenter, pep *protein.PeptideWithSetModifications, diss spectra.DissociationType) []protein.Product {
	if existing, ok := store[diss]; ok && len(existing) > 0 {
		return existing
	}
	out := store[diss]
	fragmenter.Fragment(pep, diss, protein.TerminusBoth, &out)
	store[diss] = out
	return out
}

// Run executes the search and returns the populated PSM table. cancel may
// be nil, meaning the run cannot be cancelled.
func (e *ClassicSearchEngine) Run(cancel *CancelToken) (*EngineResults, error) {
	opts := e.opts
	table := newPSMTable(opts.Scans.Len())
	decoyOnTheFly := opts.DecoyOnTheFly || opts.SpectralLibrary != nil

	progress := opts.Progress
	if progress == nil {
		progress = NopProgressSink{}
	}

	var proteinsSearched int64
	var lastPercent int64
	total := int64(len(opts.Proteins))

	T := opts.CommonParams.MaxThreadsPerFile
	err := traverse.Each(T, func(w int) error {
		cache := newDecoyCache()
		scr := newScratch()
		for i := w; i < len(opts.Proteins); i += T {
			if cancel != nil && cancel.Stopped() {
				return nil
			}
			e.searchOneProtein(opts.Proteins[i], opts, table, decoyOnTheFly, scr, cache)

			n := atomic.AddInt64(&proteinsSearched, 1)
			if total > 0 {
				percent := n * 100 / total
				prev := atomic.LoadInt64(&lastPercent)
				if percent > prev && atomic.CompareAndSwapInt64(&lastPercent, prev, percent) {
					progress.Report(int(percent), "searching proteins", nil)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &EngineResults{PSMs: table.finalize()}, nil
}

func (e *ClassicSearchEngine) searchOneProtein(p *protein.Protein, opts Opts, table *psmTable, decoyOnTheFly bool, scr *scratch, cache *decoyCache) {
	peptides := opts.Digester.Digest(p, opts.DigestionParams, opts.FixedMods, opts.VariableMods, opts.SilacLabels, opts.TurnoverLabels)
	for _, target := range peptides {
		var decoy *protein.PeptideWithSetModifications
		if decoyOnTheFly {
			if opts.DecoyOnTheFly {
				decoy = generateAcceptableDecoy(target, opts.DecoyGenerator, cache)
			} else if opts.DecoyGenerator != nil {
				decoy, _ = opts.DecoyGenerator.ReverseDecoy(target)
			}
		}

		scr.clear()

		for _, scanNotch := range acceptableScans(target.MonoisotopicMass, opts.Scans, opts.MassDiffAcceptor) {
			scan := scanNotch.scan
			notch := scanNotch.notch

			diss := opts.CommonParams.DissociationType
			if diss == spectra.Autodetect {
				diss = scan.DissociationType
			}
			if diss == spectra.Autodetect {
				log.Debug.Printf("search: scan %d has no dissociation type and none configured; skipping", scan.ScanNumber)
				continue
			}

			targetProducts := scr.fragmentInto(scr.targetProducts, opts.Fragmenter, target, diss)
			targetMatches := scoring.MatchFragmentIons(scan, targetProducts, opts.CommonParams.ProductMassTolerance, opts.CommonParams.FragmentsCanHaveDifferentCharges)
			targetScore := scoring.CalculatePeptideScore(scan, targetMatches, opts.CommonParams.FragmentsCanHaveDifferentCharges)

			switch {
			case opts.DecoyOnTheFly && decoy != nil:
				decoyProducts := scr.fragmentInto(scr.decoyProducts, opts.Fragmenter, decoy, diss)
				decoyMatches := scoring.MatchFragmentIons(scan, decoyProducts, opts.CommonParams.ProductMassTolerance, opts.CommonParams.FragmentsCanHaveDifferentCharges)
				decoyScore := scoring.CalculatePeptideScore(scan, decoyMatches, opts.CommonParams.FragmentsCanHaveDifferentCharges)

				switch {
				case decoyScore > targetScore+psm.ScoreTolerance:
					table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, decoyScore, decoy, decoyMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
				case abs(decoyScore-targetScore) <= psm.ScoreTolerance:
					table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, targetScore, target, targetMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
					table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, decoyScore, decoy, decoyMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
				default:
					table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, targetScore, target, targetMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
				}

			case opts.SpectralLibrary != nil:
				if !opts.SpectralLibrary.Contains(target.FullSequence()) {
					continue
				}
				table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, targetScore, target, targetMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
				if decoy != nil {
					decoyProducts := scr.fragmentInto(scr.decoyProducts, opts.Fragmenter, decoy, diss)
					decoyMatches := scoring.MatchFragmentIons(scan, decoyProducts, opts.CommonParams.ProductMassTolerance, opts.CommonParams.FragmentsCanHaveDifferentCharges)
					decoyScore := scoring.CalculatePeptideScore(scan, decoyMatches, opts.CommonParams.FragmentsCanHaveDifferentCharges)
					table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, decoyScore, decoy, decoyMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
				}

			default:
				table.addCandidate(scan.ScanIndex, scan.ScanNumber, notch, scan.PrecursorMass, opts.DigestionParams.Protease, targetScore, target, targetMatches, opts.CommonParams.ScoreCutoff, opts.CommonParams.ReportAmbiguity)
			}
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
