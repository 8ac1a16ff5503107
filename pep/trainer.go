// Package pep defines the Trainer contract the FDR Analysis Engine calls
// out to for posterior error probability estimation. The regressor itself —
// feature extraction, model fitting — is an excluded collaborator; this
// package only fixes the shape of the call.
package pep

import "github.com/grailbio/ms2search/psm"

// SearchType tags which PEP model a Trainer should apply: "standard",
// "top-down", or "crosslink".
type SearchType string

const (
	Standard  SearchType = "standard"
	TopDown   SearchType = "top-down"
	Crosslink SearchType = "crosslink"
)

// Metrics is the summary a Trainer returns alongside the side-effect of
// setting FdrInfo.PEP on every PSM it was given.
type Metrics struct {
	ModelName string
	AUC       float64
}

// Trainer is the external PEP-model collaborator contract: given a set of
// PSMs and per-file search parameters, it sets FdrInfo.PEP on each PSM in
// place and returns summary metrics.
type Trainer interface {
	ComputePEP(psms []*psm.PeptideSpectralMatch, searchType SearchType, fileSpecificParams map[string]string, outputFolder string) (Metrics, error)
}

// NopTrainer is a Trainer that leaves every PSM's PEP at its zero value; it
// satisfies the interface for callers (and tests) that don't have a real
// regressor wired up.
type NopTrainer struct{}

func (NopTrainer) ComputePEP(psms []*psm.PeptideSpectralMatch, searchType SearchType, fileSpecificParams map[string]string, outputFolder string) (Metrics, error) {
	return Metrics{}, nil
}
