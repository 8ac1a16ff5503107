package fdr

import (
	"encoding/binary"
	"math"

	"github.com/minio/highwayhash"
	"github.com/grailbio/ms2search/psm"
)

// dedupKey is a fixed-size array type over highwayhash.Sum's output, usable
// directly as a map key.
type dedupKey = [highwayhash.Size]uint8

var zeroSeed = dedupKey{}

// dedupKeyFor hashes (file_path, scan_number, peptide_mono_mass) — the
// triple PSM ordering groups by before keeping only the first occurrence —
// into a single comparable key.
func dedupKeyFor(p *psm.PeptideSpectralMatch, peptideMonoMass float64) dedupKey {
	buf := make([]uint8, 0, len(p.FullFilePath)+8+8)
	buf = append(buf, p.FullFilePath...)
	var scanBuf [8]byte
	binary.LittleEndian.PutUint64(scanBuf[:], uint64(p.ScanNumber))
	buf = append(buf, scanBuf[:]...)
	var massBuf [8]byte
	binary.LittleEndian.PutUint64(massBuf[:], math.Float64bits(peptideMonoMass))
	buf = append(buf, massBuf[:]...)
	return highwayhash.Sum(buf, zeroSeed[:])
}
