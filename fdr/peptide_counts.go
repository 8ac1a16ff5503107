package fdr

import "github.com/grailbio/ms2search/psm"

// PeptideCounts tallies how many times each distinct unambiguous, confident
// full-sequence peptide was observed, dataset-wide and per source file.
type PeptideCounts struct {
	ByFullSequence        map[string]int
	ByFileAndFullSequence map[string]map[string]int
}

func newPeptideCounts() *PeptideCounts {
	return &PeptideCounts{
		ByFullSequence:        make(map[string]int),
		ByFileAndFullSequence: make(map[string]map[string]int),
	}
}

// countPeptides tallies the canonical full sequence, dataset-wide and per
// file, for unambiguous PSMs at q_value <= 0.01 and q_value_notch <= 0.01.
func countPeptides(psms []*psm.PeptideSpectralMatch) *PeptideCounts {
	counts := newPeptideCounts()
	for _, p := range psms {
		if p.FdrInfo == nil || p.IsDecoy() || p.FullSequenceAmbiguous() {
			continue
		}
		if p.FdrInfo.QValue > QValueAtOneCutoff || p.FdrInfo.QValueNotch > QValueAtOneCutoff {
			continue
		}
		canonical := p.Canonical()
		if canonical == nil {
			continue
		}
		seq := canonical.FullSequence()
		counts.ByFullSequence[seq]++

		perFile, ok := counts.ByFileAndFullSequence[p.FullFilePath]
		if !ok {
			perFile = make(map[string]int)
			counts.ByFileAndFullSequence[p.FullFilePath] = perFile
		}
		perFile[seq]++
	}
	return counts
}
