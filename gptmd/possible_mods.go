package gptmd

import (
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/spectra"
)

// MassCombo is a pair of modification masses whose sum is an allowed
// residual — e.g. "oxidation + carbamidomethyl" appearing together even
// though neither alone explains the observed precursor mass.
type MassCombo struct {
	M1, M2 float64
}

// possibleMods enumerates, given the precursor mass of a PSM and a
// candidate peptide, every modification whose
// mass could explain the residual precursorMass - peptideMonoMass, either
// directly, by swapping an existing modification on the peptide, or as one
// half of a two-mass combo.
func possibleMods(precursorMass float64, allMods []protein.Modification, combos []MassCombo, tol spectra.Tolerance, pep *protein.PeptideWithSetModifications) []protein.Modification {
	var out []protein.Modification
	peptideMass := pep.MonoisotopicMass

	for _, mod := range allMods {
		if !mod.Valid {
			continue
		}
		if tol.Within(precursorMass, peptideMass+mod.MonoisotopicMass) {
			out = append(out, mod)
		}
	}

	for _, existing := range pep.Modifications {
		for _, mod := range allMods {
			if !mod.Valid || mod.Motif != existing.Motif {
				continue
			}
			if tol.Within(precursorMass, peptideMass+mod.MonoisotopicMass-existing.MonoisotopicMass) {
				out = append(out, mod)
			}
		}
	}

	for _, combo := range combos {
		if tol.Within(precursorMass, peptideMass+combo.M1+combo.M2) {
			out = append(out, possibleMods(precursorMass-combo.M1, allMods, nil, tol, pep)...)
			out = append(out, possibleMods(precursorMass-combo.M2, allMods, nil, tol, pep)...)
		}
	}

	return out
}
