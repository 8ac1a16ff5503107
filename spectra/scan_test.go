package spectra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScanTotalIntensity(t *testing.T) {
	s := NewScan(0, 101, 500.25, HCD, []Peak{
		{MZ: 100, Intensity: 10},
		{MZ: 200, Intensity: 20},
		{MZ: 300, Intensity: 5.5},
	})
	assert.Equal(t, 35.5, s.TotalIntensity)
	assert.Equal(t, 500.25, s.PrecursorMass)
	assert.Equal(t, HCD, s.DissociationType)
}

func TestNewScanCollectionSortsByPrecursorMass(t *testing.T) {
	scans := []*Scan{
		NewScan(0, 1, 900, Autodetect, nil),
		NewScan(1, 2, 300, Autodetect, nil),
		NewScan(2, 3, 600, Autodetect, nil),
	}
	c := NewScanCollection(scans)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []float64{300, 600, 900}, c.PrecursorMasses())
	// Original input order must not be mutated.
	assert.Equal(t, 900.0, scans[0].PrecursorMass)
}

func TestFirstScanWithMassOverOrEqual(t *testing.T) {
	c := NewScanCollection([]*Scan{
		NewScan(0, 1, 100, Autodetect, nil),
		NewScan(1, 2, 200, Autodetect, nil),
		NewScan(2, 3, 300, Autodetect, nil),
	})

	tests := []struct {
		minimum  float64
		expected int
	}{
		{0, 0},
		{100, 0},
		{150, 1},
		{300, 2},
		{301, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, c.FirstScanWithMassOverOrEqual(tt.minimum))
	}
}

func TestDissociationTypeString(t *testing.T) {
	assert.Equal(t, "HCD", HCD.String())
	assert.Equal(t, "Autodetect", Autodetect.String())
	assert.Equal(t, "Unknown", DissociationType(99).String())
}

func TestParseDissociationType(t *testing.T) {
	assert.Equal(t, HCD, ParseDissociationType("HCD"))
	assert.Equal(t, HCD, ParseDissociationType("hcd"))
	assert.Equal(t, CID, ParseDissociationType("CID"))
	assert.Equal(t, ETD, ParseDissociationType("etd"))
	assert.Equal(t, ETHCD, ParseDissociationType("ETHCD"))
	assert.Equal(t, ISCID, ParseDissociationType("iscid"))
	assert.Equal(t, Autodetect, ParseDissociationType("auto"))
	assert.Equal(t, Autodetect, ParseDissociationType(""))
	assert.Equal(t, Autodetect, ParseDissociationType("bogus"))
}
