package fdr

import (
	"math"
	"sort"

	"github.com/grailbio/ms2search/psm"
)

// deltaScore is best_score - runner_up_score, the margin the delta-score
// ordering ranks by.
func deltaScore(p *psm.PeptideSpectralMatch) float64 {
	return p.BestScore - p.RunnerUpScore
}

// peptideMonoMass is the monoisotopic mass of a PSM's canonical peptide,
// used for the |precursor_mass - peptide_mono_mass| ordering tiebreaker.
func peptideMonoMass(p *psm.PeptideSpectralMatch) float64 {
	if c := p.Canonical(); c != nil {
		return c.MonoisotopicMass
	}
	if len(p.BestPeptides) > 0 {
		return p.BestPeptides[0].MonoisotopicMass
	}
	return 0
}

func massResidual(p *psm.PeptideSpectralMatch) float64 {
	return math.Abs(p.PrecursorMass - peptideMonoMass(p))
}

// orderByScore sorts a copy of psms descending by BestScore, breaking ties
// by ascending mass residual.
func orderByScore(psms []*psm.PeptideSpectralMatch) []*psm.PeptideSpectralMatch {
	out := append([]*psm.PeptideSpectralMatch(nil), psms...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BestScore != out[j].BestScore {
			return out[i].BestScore > out[j].BestScore
		}
		return massResidual(out[i]) < massResidual(out[j])
	})
	return out
}

// orderByDeltaScore sorts a copy of psms descending by deltaScore, with the
// same mass-residual tiebreaker.
func orderByDeltaScore(psms []*psm.PeptideSpectralMatch) []*psm.PeptideSpectralMatch {
	out := append([]*psm.PeptideSpectralMatch(nil), psms...)
	sort.SliceStable(out, func(i, j int) bool {
		if deltaScore(out[i]) != deltaScore(out[j]) {
			return deltaScore(out[i]) > deltaScore(out[j])
		}
		return massResidual(out[i]) < massResidual(out[j])
	})
	return out
}

// dedupOrdering groups ordered by (file_path, scan_number, peptide_mono_mass)
// and keeps only the first entry of each group, preserving ordered's order.
func dedupOrdering(ordered []*psm.PeptideSpectralMatch) []*psm.PeptideSpectralMatch {
	seen := make(map[dedupKey]bool, len(ordered))
	out := make([]*psm.PeptideSpectralMatch, 0, len(ordered))
	for _, p := range ordered {
		key := dedupKeyFor(p, peptideMonoMass(p))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
