// Package scoring implements the scoring primitives shared by the Classic
// Search Engine: fragment-ion matching, the peptide score formula, and the
// precursor-mass binary search helper used to enumerate acceptable scans.
package scoring

import (
	"math"

	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/spectra"
)

// MaxCharge bounds the charge states considered when matchAllCharges is
// false.
const MaxCharge = 4

// MatchedFragmentIon pairs a theoretical product with the observed peak that
// matched it.
type MatchedFragmentIon struct {
	TheoreticalProduct protein.Product
	ObservedMZ         float64
	ObservedIntensity  float64
	Charge             int
}

// neutralToMZ converts a neutral monoisotopic mass to an m/z at the given
// charge, assuming protonation (the usual positive-mode convention).
const protonMass = 1.00727646688

func neutralToMZ(neutralMass float64, charge int) float64 {
	return (neutralMass + float64(charge)*protonMass) / float64(charge)
}

// MatchFragmentIons finds, for each theoretical product ion, the most intense
// observed peak within tolerance, breaking intensity ties toward the closest
// m/z. If matchAllCharges is false, only charges
// 1..MaxCharge are tried; if true, every charge in that range is attempted
// and all matches are returned (used when building a spectral library).
func MatchFragmentIons(scan *spectra.Scan, products []protein.Product, tol spectra.Tolerance, matchAllCharges bool) []MatchedFragmentIon {
	var matches []MatchedFragmentIon
	for _, prod := range products {
		if matchAllCharges {
			for charge := 1; charge <= MaxCharge; charge++ {
				if m, ok := bestPeakForCharge(scan, prod, tol, charge); ok {
					matches = append(matches, m)
				}
			}
			continue
		}
		best, bestCharge, found := bestPeakAnyCharge(scan, prod, tol)
		if found {
			matches = append(matches, MatchedFragmentIon{
				TheoreticalProduct: prod,
				ObservedMZ:         best.MZ,
				ObservedIntensity:  best.Intensity,
				Charge:             bestCharge,
			})
		}
	}
	return matches
}

func bestPeakForCharge(scan *spectra.Scan, prod protein.Product, tol spectra.Tolerance, charge int) (MatchedFragmentIon, bool) {
	theoreticalMZ := neutralToMZ(prod.NeutralMass, charge)
	peak, ok := closestMostIntensePeak(scan, theoreticalMZ, tol)
	if !ok {
		return MatchedFragmentIon{}, false
	}
	return MatchedFragmentIon{
		TheoreticalProduct: prod,
		ObservedMZ:         peak.MZ,
		ObservedIntensity:  peak.Intensity,
		Charge:             charge,
	}, true
}

// bestPeakAnyCharge tries charges 1..MaxCharge and keeps the highest-charge
// match.
func bestPeakAnyCharge(scan *spectra.Scan, prod protein.Product, tol spectra.Tolerance) (spectra.Peak, int, bool) {
	var bestPeak spectra.Peak
	bestCharge := 0
	found := false
	for charge := 1; charge <= MaxCharge; charge++ {
		theoreticalMZ := neutralToMZ(prod.NeutralMass, charge)
		if peak, ok := closestMostIntensePeak(scan, theoreticalMZ, tol); ok {
			bestPeak, bestCharge, found = peak, charge, true
		}
	}
	return bestPeak, bestCharge, found
}

// closestMostIntensePeak scans all peaks within tolerance of theoreticalMZ
// and returns the most intense one, breaking ties toward the closest m/z.
func closestMostIntensePeak(scan *spectra.Scan, theoreticalMZ float64, tol spectra.Tolerance) (spectra.Peak, bool) {
	var best spectra.Peak
	bestDist := math.Inf(1)
	found := false
	for _, p := range scan.Peaks {
		if !tol.Within(p.MZ, theoreticalMZ) {
			continue
		}
		dist := math.Abs(p.MZ - theoreticalMZ)
		if !found || p.Intensity > best.Intensity || (p.Intensity == best.Intensity && dist < bestDist) {
			best = p
			bestDist = dist
			found = true
		}
	}
	return best, found
}
