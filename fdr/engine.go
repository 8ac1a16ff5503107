// Package fdr implements the FDR Analysis Engine: target/decoy counting,
// q-value assignment per notch, posterior-error-probability estimation, and
// q-value monotonization.
package fdr

import (
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/ms2search/pep"
	"github.com/grailbio/ms2search/psm"
)

// AnalysisType selects which PEP-phase gate and tag apply.
type AnalysisType int

const (
	AnalysisPSM AnalysisType = iota
	AnalysisPeptide
	AnalysisCrosslink
)

// Opts bundles one FdrAnalysisEngine run's configuration.
type Opts struct {
	NumNotches    int
	UseDeltaScore bool
	AnalysisType  AnalysisType

	PEPTrainer         pep.Trainer
	FileSpecificParams map[string]string
	OutputFolder       string
}

// FdrAnalysisEngine partitions PSMs by protease and assigns target/decoy
// q-values (and, when configured, posterior error probabilities) within
// each partition.
type FdrAnalysisEngine struct {
	opts Opts
}

// NewFdrAnalysisEngine returns an engine over opts.
func NewFdrAnalysisEngine(opts Opts) *FdrAnalysisEngine {
	return &FdrAnalysisEngine{opts: opts}
}

// Results is returned by Run.
type Results struct {
	// PSMsWithin1PercentFDR is every PSM whose final QValue and QValueNotch
	// both clear QValueAtOneCutoff.
	PSMsWithin1PercentFDR []*psm.PeptideSpectralMatch
	PeptideCounts         *PeptideCounts
	// UsedDeltaScoreOrdering records which ordering won the scoring-metric
	// selection in each protease partition, keyed by protease.
	UsedDeltaScoreOrdering map[string]bool
}

// Run fills in FdrInfo in place and returns a summary. Only the PSMs that
// survive each partition's dedup (one per file, scan number and peptide
// mass) are assigned q-values; a PSM dropped as a duplicate keeps whatever
// FdrInfo it already had, which is nil for a fresh PSM.
func (e *FdrAnalysisEngine) Run(allPSMs []*psm.PeptideSpectralMatch) (Results, error) {
	partitions := partitionByProtease(allPSMs)
	proteases := make([]string, 0, len(partitions))
	for protease := range partitions {
		proteases = append(proteases, protease)
	}

	// usedDelta is written one slot per partition by its own worker, so no
	// lock is needed despite traverse.Each running workers concurrently.
	usedDelta := make([]bool, len(proteases))

	err := traverse.Each(len(proteases), func(i int) error {
		protease := proteases[i]
		group := partitions[protease]

		ordered, delta := e.chooseOrdering(group)
		usedDelta[i] = delta

		deduped := dedupOrdering(ordered)
		assignQValues(deduped, e.opts.NumNotches)
		monotonize(deduped)

		return runPEPPhase(deduped, e.opts.AnalysisType, e.opts.PEPTrainer, e.opts.FileSpecificParams, e.opts.OutputFolder)
	})
	if err != nil {
		return Results{}, err
	}

	usedDeltaScore := make(map[string]bool, len(proteases))
	for i, protease := range proteases {
		usedDeltaScore[protease] = usedDelta[i]
	}

	var within []*psm.PeptideSpectralMatch
	for _, p := range allPSMs {
		if p.FdrInfo != nil && p.FdrInfo.QValue <= QValueAtOneCutoff && p.FdrInfo.QValueNotch <= QValueAtOneCutoff {
			within = append(within, p)
		}
	}

	return Results{
		PSMsWithin1PercentFDR:  within,
		PeptideCounts:          countPeptides(allPSMs),
		UsedDeltaScoreOrdering: usedDeltaScore,
	}, nil
}

// chooseOrdering implements the scoring-metric selection: when
// UseDeltaScore is configured, try both the score and delta-score
// orderings, count PSMs reaching QValueAtOneCutoff under each (via a
// scratch q-value pass that is discarded), and adopt whichever wins.
func (e *FdrAnalysisEngine) chooseOrdering(group []*psm.PeptideSpectralMatch) ([]*psm.PeptideSpectralMatch, bool) {
	byScore := orderByScore(group)
	if !e.opts.UseDeltaScore {
		return byScore, false
	}

	byDelta := orderByDeltaScore(group)

	scoreCount := trialQualifyingCount(byScore, e.opts.NumNotches)
	deltaCount := trialQualifyingCount(byDelta, e.opts.NumNotches)

	if deltaCount > scoreCount {
		return byDelta, true
	}
	return byScore, false
}

// trialQualifyingCount runs assignQValues against a deduped copy of
// ordered to count how many PSMs would reach QValueAtOneCutoff, without
// disturbing the real FdrInfo the winning ordering will later write.
func trialQualifyingCount(ordered []*psm.PeptideSpectralMatch, numNotches int) int {
	deduped := dedupOrdering(ordered)
	scratch := make([]*psm.PeptideSpectralMatch, len(deduped))
	savedInfo := make([]*psm.FdrInfo, len(deduped))
	for i, p := range deduped {
		savedInfo[i] = p.FdrInfo
		p.FdrInfo = nil
		scratch[i] = p
	}
	assignQValues(scratch, numNotches)
	count := countAtOrBelow(scratch, QValueAtOneCutoff)
	for i, p := range deduped {
		p.FdrInfo = savedInfo[i]
	}
	return count
}

func partitionByProtease(psms []*psm.PeptideSpectralMatch) map[string][]*psm.PeptideSpectralMatch {
	out := make(map[string][]*psm.PeptideSpectralMatch)
	for _, p := range psms {
		out[p.Protease] = append(out[p.Protease], p)
	}
	return out
}
