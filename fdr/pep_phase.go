package fdr

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/grailbio/ms2search/pep"
	"github.com/grailbio/ms2search/psm"
)

// pepPhaseMinPSMs gates the PEP phase: the trainer only runs when there are
// enough PSMs to fit a model on.
const pepPhaseMinPSMs = 100

// runPEPPhase runs, for PSM and crosslink analyses with enough PSMs, the
// external trainer (which sets FdrInfo.PEP on each PSM) and then derives
// PEPQValue from a PEP-ascending sort.
func runPEPPhase(psms []*psm.PeptideSpectralMatch, analysisType AnalysisType, trainer pep.Trainer, fileSpecificParams map[string]string, outputFolder string) error {
	if !pepPhaseApplies(analysisType, len(psms)) || trainer == nil {
		return nil
	}

	searchType := pep.Standard
	if analysisType == AnalysisCrosslink {
		searchType = pep.Crosslink
	}

	if _, err := trainer.ComputePEP(psms, searchType, fileSpecificParams, outputFolder); err != nil {
		return errors.Wrap(err, "fdr: PEP trainer failed")
	}

	assignPEPQValues(psms)
	return nil
}

func pepPhaseApplies(analysisType AnalysisType, n int) bool {
	switch analysisType {
	case AnalysisPSM, AnalysisCrosslink:
		return n > pepPhaseMinPSMs
	default:
		return false
	}
}

// assignPEPQValues sorts psms by FdrInfo.PEP ascending and sets
// FdrInfo.PEPQValue to the cumulative PEP sum divided by rank (1-based),
// rounded to 6 decimals.
func assignPEPQValues(psms []*psm.PeptideSpectralMatch) {
	ordered := append([]*psm.PeptideSpectralMatch(nil), psms...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FdrInfo.PEP < ordered[j].FdrInfo.PEP
	})

	var cumulative float64
	for i, p := range ordered {
		cumulative += p.FdrInfo.PEP
		rank := float64(i + 1)
		p.FdrInfo.PEPQValue = round6(cumulative / rank)
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
