package fdr

import (
	"errors"
	"testing"

	"github.com/grailbio/ms2search/pep"
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pepPSM(scanIndex int, value float64) *psm.PeptideSpectralMatch {
	p := psm.NewPSM(scanIndex, scanIndex+1, 0, 800, "trypsin", 10, &protein.PeptideWithSetModifications{
		Protein:      &protein.Protein{Accession: "P1"},
		BaseSequence: "PEPTIDE",
		Length:       7,
	}, nil)
	p.FdrInfo = &psm.FdrInfo{PEP: value}
	return p
}

func manyPSMs(n int) []*psm.PeptideSpectralMatch {
	out := make([]*psm.PeptideSpectralMatch, n)
	for i := range out {
		out[i] = pepPSM(i, 0.01*float64(i%10))
	}
	return out
}

type fakeTrainer struct {
	err error
}

func (f fakeTrainer) ComputePEP(psms []*psm.PeptideSpectralMatch, searchType pep.SearchType, fileSpecificParams map[string]string, outputFolder string) (pep.Metrics, error) {
	if f.err != nil {
		return pep.Metrics{}, f.err
	}
	for _, p := range psms {
		p.FdrInfo.PEP = 0.01
	}
	return pep.Metrics{ModelName: "fake"}, nil
}

func TestRunPEPPhaseSkippedBelowMinPSMs(t *testing.T) {
	psms := manyPSMs(10)
	err := runPEPPhase(psms, AnalysisPSM, fakeTrainer{}, nil, "")
	require.NoError(t, err)
	assert.NotEqual(t, 0.01, psms[0].FdrInfo.PEP)
}

func TestRunPEPPhaseSkippedForPeptideAnalysis(t *testing.T) {
	psms := manyPSMs(200)
	err := runPEPPhase(psms, AnalysisPeptide, fakeTrainer{}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, psms[0].FdrInfo.PEP)
}

func TestRunPEPPhaseRunsAboveMinPSMs(t *testing.T) {
	psms := manyPSMs(200)
	err := runPEPPhase(psms, AnalysisPSM, fakeTrainer{}, nil, "")
	require.NoError(t, err)
	for _, p := range psms {
		assert.Equal(t, 0.01, p.FdrInfo.PEP)
		assert.Equal(t, 0.01, p.FdrInfo.PEPQValue)
	}
}

func TestRunPEPPhaseWrapsTrainerError(t *testing.T) {
	psms := manyPSMs(200)
	err := runPEPPhase(psms, AnalysisPSM, fakeTrainer{err: errors.New("training failed")}, nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fdr: PEP trainer failed")
	assert.Contains(t, err.Error(), "training failed")
}

func TestAssignPEPQValuesOrdersByPEPAscending(t *testing.T) {
	psms := []*psm.PeptideSpectralMatch{
		pepPSM(0, 0.3),
		pepPSM(1, 0.1),
		pepPSM(2, 0.2),
	}
	assignPEPQValues(psms)

	// rank 1 (PEP 0.1): cumulative 0.1 / 1 = 0.1
	// rank 2 (PEP 0.2): cumulative 0.3 / 2 = 0.15
	// rank 3 (PEP 0.3): cumulative 0.6 / 3 = 0.2
	assert.InDelta(t, 0.1, psms[1].FdrInfo.PEPQValue, 1e-9)
	assert.InDelta(t, 0.15, psms[2].FdrInfo.PEPQValue, 1e-9)
	assert.InDelta(t, 0.2, psms[0].FdrInfo.PEPQValue, 1e-9)
}

func TestRound6(t *testing.T) {
	assert.Equal(t, 0.123457, round6(0.1234567))
	assert.Equal(t, 0.1, round6(0.1))
}
