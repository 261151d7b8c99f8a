package normalize

import (
	"testing"

	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestHazardTag(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  string
	}{
		{name: "no codes", codes: nil, want: HazardNone},
		{name: "H3xx dominates", codes: []string{"H225", "H301"}, want: HazardHigh},
		{name: "H2xx without H3xx", codes: []string{"H225", "P210"}, want: HazardModerate},
		{name: "precaution codes only", codes: []string{"P264", "P270"}, want: HazardLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hazardTag(tt.codes))
		})
	}
}

func TestSolubilityTag(t *testing.T) {
	tests := []struct {
		name string
		logP *float64
		want string
	}{
		{name: "unknown", logP: nil, want: SolubilityUnknown},
		{name: "very soluble", logP: floatPtr(-1.2), want: SolubilityVery},
		{name: "boundary very", logP: floatPtr(-0.5), want: SolubilityModerate},
		{name: "moderate", logP: floatPtr(1.5), want: SolubilityModerate},
		{name: "boundary moderate", logP: floatPtr(3.0), want: SolubilityModerate},
		{name: "poor", logP: floatPtr(4.7), want: SolubilityPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, solubilityTag(tt.logP))
		})
	}
}

func TestSpectraTag(t *testing.T) {
	assert.Equal(t, NoSpectraAvailable, spectraTag(nil))
	assert.Equal(t, "UV, MS spectra available", spectraTag([]string{"UV", "MS"}))
}

func TestCategories(t *testing.T) {
	t.Run("hazardous pharma compound", func(t *testing.T) {
		record := &core.MoleculeRecord{}
		record.Safety.GHSCodes = []string{"H301"}
		record.Solubility.LogP = floatPtr(0.5)

		got := categories(record)
		assert.Equal(t, []core.Category{core.CategorySafety, core.CategoryPharmacology}, got)
	})

	t.Run("spectroscopy and materials", func(t *testing.T) {
		record := &core.MoleculeRecord{}
		record.Spectra.Kinds = []string{"UV"}
		record.Thermo.Entropy = floatPtr(205.2)

		got := categories(record)
		assert.Equal(t, []core.Category{core.CategorySpectroscopy, core.CategoryMaterials}, got)
	})

	t.Run("bare record has no categories", func(t *testing.T) {
		assert.Empty(t, categories(&core.MoleculeRecord{}))
	})
}
