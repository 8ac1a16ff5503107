// Package gptmd implements global PTM discovery: given confident PSMs whose
// precursor mass diverges from the peptide's theoretical mass by a value
// matching a known modification (or a combination of two), it annotates the
// sequence database with candidate localized modifications.
package gptmd

import (
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/ms2search/protein"
)

// positionedMod is one (protein position, modification) pair discovered for
// an accession.
type positionedMod struct {
	Position int
	Mod      protein.Modification
}

// modKey orders positionedMod entries in a llrb.Tree the same way
// encoding/bampair/shard_info.go orders its shard keys: position first,
// modification name as the tiebreaker, so Insert naturally dedups and
// in-order traversal is deterministic.
type modKey struct {
	position int
	modName  string
	entry    *positionedMod
}

func (k modKey) Compare(c llrb.Comparable) int {
	o := c.(modKey)
	if diff := k.position - o.position; diff != 0 {
		return diff
	}
	if k.modName < o.modName {
		return -1
	}
	if k.modName > o.modName {
		return 1
	}
	return 0
}

// ProteinModSet is the accession -> set<(position, modification)> mapping
// that is the GPTMD engine's output. One llrb.Tree per accession gives
// O(log n) membership testing, which Add uses to report whether an insert
// is new (for the adds_count tally).
type ProteinModSet struct {
	byAccession map[string]*llrb.Tree
}

// NewProteinModSet returns an empty set.
func NewProteinModSet() *ProteinModSet {
	return &ProteinModSet{byAccession: make(map[string]*llrb.Tree)}
}

// Add inserts (position, mod) under accession, returning true if this is a
// new entry (the tree didn't already contain that position/name pair).
func (s *ProteinModSet) Add(accession string, position int, mod protein.Modification) bool {
	tree, ok := s.byAccession[accession]
	if !ok {
		tree = &llrb.Tree{}
		s.byAccession[accession] = tree
	}
	key := modKey{position: position, modName: mod.Name}
	if tree.Get(key) != nil {
		return false
	}
	key.entry = &positionedMod{Position: position, Mod: mod}
	tree.Insert(key)
	return true
}

// Accessions returns the accessions with at least one entry, sorted.
func (s *ProteinModSet) Accessions() []string {
	out := make([]string, 0, len(s.byAccession))
	for acc := range s.byAccession {
		out = append(out, acc)
	}
	sort.Strings(out)
	return out
}

// Entries returns every (position, modification) recorded for accession, in
// position/name order.
func (s *ProteinModSet) Entries(accession string) []positionedMod {
	tree, ok := s.byAccession[accession]
	if !ok {
		return nil
	}
	var out []positionedMod
	tree.Do(func(c llrb.Comparable) bool {
		out = append(out, *c.(modKey).entry)
		return false
	})
	return out
}
