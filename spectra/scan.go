// Package spectra defines the MS2 spectrum data model: Scan, ScanCollection,
// and the dissociation-type enum shared by the scoring, search, and FDR
// packages.
package spectra

import (
	"sort"
	"strings"
)

// DissociationType identifies the fragmentation method used to produce a
// scan's product ions.
type DissociationType int

const (
	// Autodetect means the dissociation type should be read off the scan
	// itself rather than taken from configuration.
	Autodetect DissociationType = iota
	HCD
	CID
	ETD
	ETHCD
	EThcD
	ISCID
)

// ParseDissociationType maps a case-insensitive name (as read from a scan
// file or CLI flag) to a DissociationType. An empty or unrecognized name
// maps to Autodetect. ETHCD and EThcD are indistinguishable once
// case-folded and both parse to ETHCD; callers needing EThcD specifically
// must set DissociationType directly.
func ParseDissociationType(name string) DissociationType {
	switch strings.ToUpper(name) {
	case "HCD":
		return HCD
	case "CID":
		return CID
	case "ETD":
		return ETD
	case "ETHCD":
		return ETHCD
	case "ISCID":
		return ISCID
	default:
		return Autodetect
	}
}

func (d DissociationType) String() string {
	switch d {
	case Autodetect:
		return "Autodetect"
	case HCD:
		return "HCD"
	case CID:
		return "CID"
	case ETD:
		return "ETD"
	case ETHCD:
		return "ETHCD"
	case EThcD:
		return "EThcD"
	case ISCID:
		return "ISCID"
	default:
		return "Unknown"
	}
}

// Peak is one (m/z, intensity) observation in a spectrum.
type Peak struct {
	MZ        float64
	Intensity float64
}

// Scan is an immutable record of one MS2 spectrum.
//
// ScanIndex is dense, [0, N) within a file; ScanNumber is the sparse
// instrument-assigned identifier and is only used for reporting.
type Scan struct {
	ScanIndex       int
	ScanNumber      int
	PrecursorMass   float64
	DissociationType DissociationType
	Peaks           []Peak

	// TotalIntensity caches the sum of all peak intensities, computed once at
	// construction; CalculatePeptideScore divides by it.
	TotalIntensity float64
}

// NewScan builds a Scan and precomputes TotalIntensity.
func NewScan(scanIndex, scanNumber int, precursorMass float64, diss DissociationType, peaks []Peak) *Scan {
	s := &Scan{
		ScanIndex:        scanIndex,
		ScanNumber:       scanNumber,
		PrecursorMass:    precursorMass,
		DissociationType: diss,
		Peaks:            peaks,
	}
	for _, p := range peaks {
		s.TotalIntensity += p.Intensity
	}
	return s
}

// ScanCollection is an ordered sequence of Scans sorted ascending by
// PrecursorMass, with a parallel float64 array for binary search.
type ScanCollection struct {
	Scans          []*Scan
	precursorMass  []float64
}

// NewScanCollection sorts scans by precursor mass and builds the parallel
// PrecursorMass array used by FirstScanWithMassOverOrEqual. The input slice
// is not mutated; the returned collection owns its own copy.
func NewScanCollection(scans []*Scan) *ScanCollection {
	sorted := make([]*Scan, len(scans))
	copy(sorted, scans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PrecursorMass < sorted[j].PrecursorMass
	})
	masses := make([]float64, len(sorted))
	for i, s := range sorted {
		masses[i] = s.PrecursorMass
	}
	return &ScanCollection{Scans: sorted, precursorMass: masses}
}

// Len returns the number of scans in the collection.
func (c *ScanCollection) Len() int { return len(c.Scans) }

// PrecursorMasses returns the parallel, ascending-sorted precursor-mass
// array backing this collection. Callers must not mutate it.
func (c *ScanCollection) PrecursorMasses() []float64 { return c.precursorMass }

// FirstScanWithMassOverOrEqual returns the index of the first scan whose
// PrecursorMass is >= minimum, using binary search. If no such scan exists,
// it returns len(c.Scans) (the insertion position), mirroring
// interval.SearchPosTypes's sort.Search idiom.
func (c *ScanCollection) FirstScanWithMassOverOrEqual(minimum float64) int {
	return sort.Search(len(c.precursorMass), func(i int) bool {
		return c.precursorMass[i] >= minimum
	})
}
