package protein

// MassInterval is an inclusive [Min, Max] window of acceptable precursor
// mass, tagged with a notch.
type MassInterval struct {
	Min, Max float64
	Notch    int
}

// MassDiffAcceptor maps a peptide's theoretical monoisotopic mass to the set
// of precursor-mass windows (each tagged with a notch) that would accept it.
type MassDiffAcceptor interface {
	// NumNotches is the number of distinct notches this acceptor can
	// produce; FDR analysis uses it to size per-notch arrays.
	NumNotches() int
	// Intervals returns the accepted precursor-mass windows for a peptide of
	// the given theoretical mass.
	Intervals(theoreticalMass float64) []MassInterval
}

// DotMassDiffAcceptor accepts precursor masses within tolerance of
// theoreticalMass+offset, for each configured offset — the common "search
// 0/+1/+2 Da" acceptor. Offsets[i] is tagged with notch i.
type DotMassDiffAcceptor struct {
	Offsets   []float64
	Tolerance ppmTolerance
}

type ppmTolerance struct{ PPM float64 }

// NewDotMassDiffAcceptor builds a DotMassDiffAcceptor with the given mass
// offsets (notch i <-> Offsets[i]) and a ppm tolerance.
func NewDotMassDiffAcceptor(offsets []float64, ppm float64) *DotMassDiffAcceptor {
	return &DotMassDiffAcceptor{Offsets: offsets, Tolerance: ppmTolerance{PPM: ppm}}
}

func (a *DotMassDiffAcceptor) NumNotches() int { return len(a.Offsets) }

func (a *DotMassDiffAcceptor) Intervals(theoreticalMass float64) []MassInterval {
	out := make([]MassInterval, len(a.Offsets))
	for i, off := range a.Offsets {
		center := theoreticalMass + off
		window := center * a.Tolerance.PPM * 1e-6
		out[i] = MassInterval{Min: center - window, Max: center + window, Notch: i}
	}
	return out
}

// OpenMassDiffAcceptor accepts any precursor mass at all under a single
// notch — used for open/unconstrained search.
type OpenMassDiffAcceptor struct{}

func (OpenMassDiffAcceptor) NumNotches() int { return 1 }

func (OpenMassDiffAcceptor) Intervals(float64) []MassInterval {
	return []MassInterval{{Min: 0, Max: 1e18, Notch: 0}}
}
