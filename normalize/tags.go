package normalize

import (
	"strings"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// Tag phrases substituted into prompt templates. The wording is part of
// the template contract, so these are constants rather than free text.
const (
	HazardHigh     = "high hazard"
	HazardModerate = "moderate hazard"
	HazardLow      = "low hazard"
	HazardNone     = "no known hazard"

	SolubilityVery     = "very soluble"
	SolubilityModerate = "moderately soluble"
	SolubilityPoor     = "poorly soluble"
	SolubilityUnknown  = "unknown solubility"

	NoSpectraAvailable = "no spectra available"
)

// hazardTag grades GHS codes: H3xx statements indicate acute toxicity
// or severe health hazards, H2xx physical hazards.
func hazardTag(ghsCodes []string) string {
	var anyH2, anyH3 bool
	for _, code := range ghsCodes {
		switch {
		case strings.HasPrefix(code, "H3"):
			anyH3 = true
		case strings.HasPrefix(code, "H2"):
			anyH2 = true
		}
	}
	switch {
	case anyH3:
		return HazardHigh
	case anyH2:
		return HazardModerate
	case len(ghsCodes) > 0:
		return HazardLow
	default:
		return HazardNone
	}
}

// solubilityTag buckets the octanol/water partition coefficient.
func solubilityTag(logP *float64) string {
	switch {
	case logP == nil:
		return SolubilityUnknown
	case *logP < -0.5:
		return SolubilityVery
	case *logP <= 3:
		return SolubilityModerate
	default:
		return SolubilityPoor
	}
}

// spectraTag summarizes the available spectra for prompt use.
func spectraTag(kinds []string) string {
	if len(kinds) == 0 {
		return NoSpectraAvailable
	}
	return strings.Join(kinds, ", ") + " spectra available"
}

// categories derives the audience categories from record content, in
// priority order. Safety is present whenever GHS codes exist so that
// hazard information is never lost to a narrower template.
func categories(record *core.MoleculeRecord) []core.Category {
	var cats []core.Category
	if len(record.Safety.GHSCodes) > 0 {
		cats = append(cats, core.CategorySafety)
	}
	if record.Solubility.LogP != nil || len(record.Solubility.PKa) > 0 {
		cats = append(cats, core.CategoryPharmacology)
	}
	if len(record.Spectra.Kinds) > 0 {
		cats = append(cats, core.CategorySpectroscopy)
	}
	if record.Thermo.StandardEnthalpy != nil || record.Thermo.Entropy != nil || record.Thermo.HeatCapacity != nil {
		cats = append(cats, core.CategoryMaterials)
	}
	return cats
}

// deriveTags fills the record's classification tags from its normalized
// fields. Must run after all other fields are populated.
func deriveTags(record *core.MoleculeRecord) {
	record.Tags = core.Tags{
		Hazard:     hazardTag(record.Safety.GHSCodes),
		Solubility: solubilityTag(record.Solubility.LogP),
		Spectra:    spectraTag(record.Spectra.Kinds),
		Categories: categories(record),
	}
}
