package testdigest

import (
	"math/rand"

	"github.com/grailbio/ms2search/protein"
)

// ReverseScrambleDecoyGenerator builds decoys by reversing or deterministically
// shuffling a target's base sequence, keeping length and modification count
// fixed so the resulting peptide can still be fragmented and scored.
type ReverseScrambleDecoyGenerator struct {
	// Rand, when nil, defaults to a package-local source seeded from the
	// target's length so ScrambledDecoy stays deterministic across calls in
	// a test without callers having to thread a seed through.
	Rand *rand.Rand
}

func (g ReverseScrambleDecoyGenerator) ReverseDecoy(target *protein.PeptideWithSetModifications) (*protein.PeptideWithSetModifications, []int) {
	n := len(target.BaseSequence)
	reversed := make([]byte, n)
	newLocations := make([]int, n)
	for i := 0; i < n; i++ {
		reversed[i] = target.BaseSequence[n-1-i]
		newLocations[i] = n - 1 - i
	}
	return buildDecoy(target, string(reversed), newLocations), newLocations
}

func (g ReverseScrambleDecoyGenerator) ScrambledDecoy(target *protein.PeptideWithSetModifications) (*protein.PeptideWithSetModifications, []int) {
	n := len(target.BaseSequence)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r := g.Rand
	if r == nil {
		r = rand.New(rand.NewSource(int64(n)))
	}
	r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	scrambled := make([]byte, n)
	for i, from := range perm {
		scrambled[i] = target.BaseSequence[from]
	}
	return buildDecoy(target, string(scrambled), perm), perm
}

func buildDecoy(target *protein.PeptideWithSetModifications, decoySeq string, newLocations []int) *protein.PeptideWithSetModifications {
	decoyProtein := &protein.Protein{
		Accession:    "DECOY_" + target.Protein.Accession,
		BaseSequence: decoySeq,
		IsDecoy:      true,
		BaseProtein:  target.Protein,
	}
	mods := make(map[int]protein.Modification, len(target.Modifications))
	// Position 1 (N-terminus) and Length+2 (C-terminus) carry forward
	// unchanged; internal residue positions follow newLocations.
	inverse := make([]int, len(newLocations))
	for newPos, oldPos := range newLocations {
		inverse[oldPos] = newPos
	}
	for pos, mod := range target.Modifications {
		switch {
		case pos == 1 || pos == target.Length+2:
			mods[pos] = mod
		case pos >= 2 && pos <= target.Length+1:
			mods[inverse[pos-2]+2] = mod
		}
	}
	return &protein.PeptideWithSetModifications{
		Protein:          decoyProtein,
		OneBasedStart:    target.OneBasedStart,
		BaseSequence:     decoySeq,
		Length:           target.Length,
		MonoisotopicMass: target.MonoisotopicMass,
		Modifications:    mods,
	}
}
