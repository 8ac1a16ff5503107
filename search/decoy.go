package search

import (
	"math"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/util"
)

// maxRescrambleAttempts bounds the reverse/scramble retry loop: without a
// cap, a pathological peptide (e.g. a homopolymer) could rescramble forever
// without ever landing on a sufficiently dissimilar decoy.
const maxRescrambleAttempts = 25

// DecoyMinEditDistanceFraction is the second half of decoy acceptability:
// a candidate can be positionally dissimilar (passing SequenceSimilarity)
// while still being only a handful of edits away from its target — e.g. a
// short cyclic rotation. Requiring a minimum Levenshtein distance, scaled to
// peptide length, catches that case where positional similarity alone
// would not.
const DecoyMinEditDistanceFraction = 0.2

// isAcceptableDecoy reports whether candidate differs enough from target to
// serve as a decoy: positionally dissimilar per protein.SequenceSimilarity
// AND at least DecoyMinEditDistanceFraction of its length away under
// Levenshtein distance.
func isAcceptableDecoy(target, candidate *protein.PeptideWithSetModifications) (accept bool, similarity float64, editDistance int) {
	similarity = protein.SequenceSimilarity(target, candidate)
	editDistance = util.Levenshtein(target.BaseSequence, candidate.BaseSequence, "", "")
	minEditDistance := int(math.Ceil(float64(len(target.BaseSequence)) * DecoyMinEditDistanceFraction))
	accept = similarity <= DecoySimilarityThreshold && editDistance >= minEditDistance
	return accept, similarity, editDistance
}

// decoyCache is per-worker scratch: a set of already-tried decoy sequences,
// hashed with farm so repeated rescrambles of the same peptide are
// recognized in O(1) without re-running SequenceSimilarity.
type decoyCache struct {
	seen map[uint64]bool
}

func newDecoyCache() *decoyCache {
	return &decoyCache{seen: make(map[uint64]bool)}
}

func (c *decoyCache) tried(seq string) bool {
	h := farm.Hash64WithSeed([]byte(seq), 0)
	if c.seen[h] {
		return true
	}
	c.seen[h] = true
	return false
}

// generateAcceptableDecoy generates a reverse decoy; if it fails
// isAcceptableDecoy, it generates a scrambled decoy instead, retrying until
// one is accepted or maxRescrambleAttempts is exhausted, in which case the
// last scramble is returned anyway — it is the caller's job to accept the
// risk of an easy decoy in that rare case.
func generateAcceptableDecoy(target *protein.PeptideWithSetModifications, gen protein.DecoyGenerator, cache *decoyCache) *protein.PeptideWithSetModifications {
	decoy, _ := gen.ReverseDecoy(target)
	if accept, _, _ := isAcceptableDecoy(target, decoy); accept {
		return decoy
	}

	for attempt := 0; attempt < maxRescrambleAttempts; attempt++ {
		scrambled, _ := gen.ScrambledDecoy(target)
		if cache.tried(scrambled.BaseSequence) {
			continue
		}
		accept, similarity, dist := isAcceptableDecoy(target, scrambled)
		log.Debug.Printf("search: rescrambled decoy for %s (similarity %.3f, edit distance %d, attempt %d)",
			target.BaseSequence, similarity, dist, attempt)
		if accept {
			return scrambled
		}
		decoy = scrambled
	}
	return decoy
}
