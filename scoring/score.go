package scoring

import (
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/spectra"
)

// CalculatePeptideScore computes the number of matched ions plus the
// fraction of scan intensity explained by those matches.
//
// When fragmentsCanHaveDifferentCharges is true, ions matched at multiple
// charges each count once (this is the normal case when
// MatchFragmentIons was called with matchAllCharges=true); otherwise, for a
// given theoretical product, only the highest-charge match contributes.
func CalculatePeptideScore(scan *spectra.Scan, matches []MatchedFragmentIon, fragmentsCanHaveDifferentCharges bool) float64 {
	if !fragmentsCanHaveDifferentCharges {
		matches = collapseToHighestCharge(matches)
	}
	var matchedIntensity float64
	for _, m := range matches {
		matchedIntensity += m.ObservedIntensity
	}
	score := float64(len(matches))
	if scan.TotalIntensity > 0 {
		score += matchedIntensity / scan.TotalIntensity
	}
	return score
}

// collapseToHighestCharge keeps, for each distinct theoretical product, only
// the match with the highest charge.
func collapseToHighestCharge(matches []MatchedFragmentIon) []MatchedFragmentIon {
	best := make(map[productKey]MatchedFragmentIon)
	order := make([]productKey, 0, len(matches))
	for _, m := range matches {
		key := productKey{m.TheoreticalProduct.Type, m.TheoreticalProduct.FragmentNumber}
		if prev, ok := best[key]; !ok || m.Charge > prev.Charge {
			if !ok {
				order = append(order, key)
			}
			best[key] = m
		}
	}
	out := make([]MatchedFragmentIon, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

type productKey struct {
	typ protein.ProductType
	num int
}
