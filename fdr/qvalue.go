package fdr

import "github.com/grailbio/ms2search/psm"

// QValueAtOneCutoff is the fixed q-value bound peptide counting and
// scoring-metric selection use ("reaching q_value <= 0.01").
const QValueAtOneCutoff = 0.01

// notchBucket clamps a PSM's notch into [0, numNotches], with numNotches
// itself the overflow bucket for a PSM whose notch is absent or out of
// range.
func notchBucket(notch, numNotches int) int {
	if notch < 0 || notch >= numNotches {
		return numNotches
	}
	return notch
}

// assignQValues walks the PSMs ordered from best to worst, accumulating
// target/decoy counts (globally and per notch bucket) and setting each
// PSM's FdrInfo accordingly. A PSM whose tied-best set contains at least one
// decoy peptide contributes fractionally rather than all-or-nothing:
// decoy_hits / total_hits among its distinct full-sequence best-matching
// peptides credited to decoy, and the complementary fraction credited to
// target. A fully-target PSM is the degenerate case with zero decoy credit;
// a fully-decoy PSM is the degenerate case with full decoy credit.
func assignQValues(ordered []*psm.PeptideSpectralMatch, numNotches int) {
	var cumTarget, cumDecoy float64
	cumTargetNotch := make([]float64, numNotches+1)
	cumDecoyNotch := make([]float64, numNotches+1)

	for _, p := range ordered {
		if p.FdrInfo == nil {
			p.FdrInfo = &psm.FdrInfo{}
		}
		bucket := notchBucket(p.Notch, numNotches)

		decoyCredit := 0.0
		if p.HasAnyDecoy() {
			decoyCredit = decoyFraction(p)
		}
		targetCredit := 1 - decoyCredit

		cumDecoy += decoyCredit
		cumDecoyNotch[bucket] += decoyCredit
		cumTarget += targetCredit
		cumTargetNotch[bucket] += targetCredit

		p.FdrInfo.CumulativeTarget = cumTarget
		p.FdrInfo.CumulativeDecoy = cumDecoy
		p.FdrInfo.QValue = ratioClampedToOne(cumDecoy, cumTarget)

		p.FdrInfo.CumulativeTargetNotch = cumTargetNotch[bucket]
		p.FdrInfo.CumulativeDecoyNotch = cumDecoyNotch[bucket]
		p.FdrInfo.QValueNotch = ratioClampedToOne(cumDecoyNotch[bucket], cumTargetNotch[bucket])
	}
}

// decoyFraction is decoy_hits / total_hits among p's distinct full-sequence
// best-matching peptides; only meaningful when p.HasAnyDecoy().
func decoyFraction(p *psm.PeptideSpectralMatch) float64 {
	distinct := p.DistinctFullSequencePeptides()
	if len(distinct) == 0 {
		return 1
	}
	decoyHits := 0
	for _, pep := range distinct {
		if pep.Protein.IsDecoy {
			decoyHits++
		}
	}
	return float64(decoyHits) / float64(len(distinct))
}

// ratioClampedToOne returns min(1, decoy/target); an empty-target
// denominator clamps to 1.0 rather than dividing by zero.
func ratioClampedToOne(decoy, target float64) float64 {
	if target <= 0 {
		return 1
	}
	q := decoy / target
	if q > 1 {
		return 1
	}
	return q
}

// countAtOrBelow counts PSMs whose QValue is <= cutoff; used by the
// use_delta_score ordering selection.
func countAtOrBelow(ordered []*psm.PeptideSpectralMatch, cutoff float64) int {
	n := 0
	for _, p := range ordered {
		if p.FdrInfo != nil && p.FdrInfo.QValue <= cutoff {
			n++
		}
	}
	return n
}

// monotonize walks from worst (last) to best (first); each PSM's
// QValue/QValueNotch is clamped to the
// running minimum seen so far, so a lower-scoring PSM can never show a
// better q-value than a higher-scoring one.
func monotonize(ordered []*psm.PeptideSpectralMatch) {
	runningMin := 1.0
	runningMinNotch := 1.0
	for i := len(ordered) - 1; i >= 0; i-- {
		info := ordered[i].FdrInfo
		if info == nil {
			continue
		}
		if info.QValue < runningMin {
			runningMin = info.QValue
		} else {
			info.QValue = runningMin
		}
		if info.QValueNotch < runningMinNotch {
			runningMinNotch = info.QValueNotch
		} else {
			info.QValueNotch = runningMinNotch
		}
	}
}
