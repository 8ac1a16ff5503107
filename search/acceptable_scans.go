package search

import (
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/spectra"
)

// scanNotch pairs a candidate scan with the notch its precursor mass
// satisfied.
type scanNotch struct {
	scan  *spectra.Scan
	notch int
}

// acceptableScans finds, for each (interval, notch) the mass-diff acceptor
// returns for theoreticalMass, the first scan whose precursor mass is >=
// interval.Min by binary search, then yields scans while precursor mass <=
// interval.Max.
func acceptableScans(theoreticalMass float64, scans *spectra.ScanCollection, acceptor protein.MassDiffAcceptor) []scanNotch {
	var out []scanNotch
	masses := scans.PrecursorMasses()
	for _, interval := range acceptor.Intervals(theoreticalMass) {
		i := scans.FirstScanWithMassOverOrEqual(interval.Min)
		for ; i < len(masses) && masses[i] <= interval.Max; i++ {
			out = append(out, scanNotch{scan: scans.Scans[i], notch: interval.Notch})
		}
	}
	return out
}
