package search

import (
	"sync"

	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/grailbio/ms2search/scoring"
)

// psmTable is the PSMs[] array plus its per-slot lock array: a flat array of
// locks rather than a concurrent map, since scan indices are known and
// contiguous up front. One lock per scan index gives per-scan serialization
// while letting all other scans proceed concurrently.
type psmTable struct {
	locks []sync.Mutex
	slots []*psm.PeptideSpectralMatch
}

func newPSMTable(n int) *psmTable {
	return &psmTable{
		locks: make([]sync.Mutex, n),
		slots: make([]*psm.PeptideSpectralMatch, n),
	}
}

// addCandidate rejects candidates below the score cutoff, then acquires the
// per-scan lock and either creates a new PSM or folds the candidate into
// the existing one via AddOrReplace.
func (t *psmTable) addCandidate(
	scanIndex, scanNumber, notch int,
	precursorMass float64,
	protease string,
	score float64,
	pep *protein.PeptideWithSetModifications,
	ions []scoring.MatchedFragmentIon,
	cutoff float64,
	reportAmbiguity bool,
) {
	if score < cutoff {
		return
	}
	t.locks[scanIndex].Lock()
	defer t.locks[scanIndex].Unlock()

	existing := t.slots[scanIndex]
	if existing == nil {
		t.slots[scanIndex] = psm.NewPSM(scanIndex, scanNumber, notch, precursorMass, protease, score, pep, ions)
		return
	}
	if score-existing.RunnerUpScore > -psm.ScoreTolerance {
		existing.AddOrReplace(pep, score, notch, reportAmbiguity, ions)
	}
}

// finalize resolves ambiguities on every populated slot and returns the
// populated slots in scan-index order.
func (t *psmTable) finalize() []*psm.PeptideSpectralMatch {
	out := make([]*psm.PeptideSpectralMatch, len(t.slots))
	for i, p := range t.slots {
		if p == nil {
			continue
		}
		p.ResolveAmbiguity()
		out[i] = p
	}
	return out
}
