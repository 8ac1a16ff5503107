package protein

// SequenceSimilarity is the decoy-acceptability metric: for aligned
// positions of equal length, position i counts as a match if
// target[i] == decoy[i] AND (no modification at i+2 on target, or the same
// modification at i+2 on both). Returns matches/length.
//
// target and decoy must have equal BaseSequence length; callers (the search
// engine's decoy-on-the-fly step) are responsible for only ever comparing a
// target against its own freshly generated decoy, which always holds.
func SequenceSimilarity(target, decoy *PeptideWithSetModifications) float64 {
	n := len(target.BaseSequence)
	if n == 0 {
		return 0
	}
	if len(decoy.BaseSequence) != n {
		panic("protein: SequenceSimilarity requires equal-length sequences")
	}
	matches := 0
	for i := 0; i < n; i++ {
		if target.BaseSequence[i] != decoy.BaseSequence[i] {
			continue
		}
		pos := i + 2
		tMod, tHas := target.Modifications[pos]
		dMod, dHas := decoy.Modifications[pos]
		if !tHas || (dHas && tMod == dMod) {
			matches++
		}
	}
	return float64(matches) / float64(n)
}
