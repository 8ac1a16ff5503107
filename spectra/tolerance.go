package spectra

import "math"

// ToleranceKind distinguishes a relative (ppm) tolerance from an absolute
// (Thomson) one.
type ToleranceKind int

const (
	PPM ToleranceKind = iota
	Absolute
)

// Tolerance is a mass window expressed either in ppm or in absolute Th.
type Tolerance struct {
	Kind  ToleranceKind
	Value float64
}

// Within reports whether measured is within the tolerance window of
// theoretical.
func (t Tolerance) Within(measured, theoretical float64) bool {
	return math.Abs(measured-theoretical) <= t.window(theoretical)
}

// Diff returns measured - theoretical, signed, for callers that need the
// residual rather than a yes/no answer.
func (t Tolerance) Diff(measured, theoretical float64) float64 {
	return measured - theoretical
}

func (t Tolerance) window(theoretical float64) float64 {
	if t.Kind == PPM {
		return math.Abs(theoretical) * t.Value * 1e-6
	}
	return t.Value
}

// NewPPMTolerance constructs a ppm-based Tolerance.
func NewPPMTolerance(ppm float64) Tolerance { return Tolerance{Kind: PPM, Value: ppm} }

// NewAbsoluteTolerance constructs a Th-based Tolerance.
func NewAbsoluteTolerance(th float64) Tolerance { return Tolerance{Kind: Absolute, Value: th} }
