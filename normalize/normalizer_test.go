package normalize

import (
	"encoding/json"
	"testing"

	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/pubchem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testViewJSON = `{
  "Record": {
    "RecordTitle": "Caffeine",
    "Section": [
      {
        "TOCHeading": "Chemical and Physical Properties",
        "Section": [
          {
            "TOCHeading": "Thermodynamics",
            "Information": [
              {"Name": "Standard Enthalpy of Formation", "Value": {"Number": [-45.6], "Unit": "kJ/mol"}},
              {"Name": "Standard Molar Entropy", "Value": {"Number": [205.2], "Unit": "J/mol K"}}
            ]
          }
        ]
      },
      {
        "TOCHeading": "Safety and Hazards",
        "Section": [
          {
            "TOCHeading": "GHS Classification",
            "Information": [
              {"Name": "GHS Hazard Statements", "Value": {"StringWithMarkup": [
                {"String": "H302 (100%): Harmful if swallowed"},
                {"String": "P264, P270: wash hands thoroughly"}
              ]}}
            ]
          }
        ]
      },
      {
        "TOCHeading": "Spectral Information",
        "Section": [
          {
            "TOCHeading": "UV Spectra",
            "Information": [
              {"Name": "UV Max Absorption", "Value": {"StringWithMarkup": [{"String": "Max absorption at 273 nm in water"}]}}
            ]
          },
          {"TOCHeading": "Mass Spectra"}
        ]
      }
    ]
  }
}`

func testPayload(t *testing.T) *pubchem.Payload {
	t.Helper()

	payload := &pubchem.Payload{CID: 2519}

	recordJSON := `{
	  "PC_Compounds": [{
	    "id": {"id": {"cid": 2519}},
	    "atoms": {"aid": [1, 2, 3], "element": [8, 6, 1]},
	    "bonds": {"aid1": [1, 2], "aid2": [2, 3], "order": [2, 1]},
	    "coords": [{"aid": [1, 2, 3], "conformers": [{
	      "x": [0.0, 1.2, 2.1], "y": [0.0, 0.1, -0.4], "z": [0.0, 0.0, 0.3]
	    }]}],
	    "charge": 0
	  }]
	}`
	require.NoError(t, json.Unmarshal([]byte(recordJSON), &payload.Record))

	synonymsJSON := `{"InformationList": {"Information": [{"CID": 2519, "Synonym": ["caffeine", "58-08-2", "guaranine"]}]}}`
	require.NoError(t, json.Unmarshal([]byte(synonymsJSON), &payload.Synonyms))

	propsJSON := `{"PropertyTable": {"Properties": [{
	  "CID": 2519,
	  "CanonicalSMILES": "CN1C=NC2=C1C(=O)N(C(=O)N2C)C",
	  "InChIKey": "RYYVLZVUVIJVGH-UHFFFAOYSA-N",
	  "XLogP": -0.1
	}]}}`
	require.NoError(t, json.Unmarshal([]byte(propsJSON), &payload.Properties))

	require.NoError(t, json.Unmarshal([]byte(testViewJSON), &payload.View))

	return payload
}

func TestNormalize(t *testing.T) {
	normalizer := NewNormalizer()
	record, err := normalizer.Normalize(testPayload(t))
	require.NoError(t, err)

	assert.EqualValues(t, 2519, record.CID)

	// Names
	assert.Equal(t, "caffeine", record.Names.Preferred)
	assert.Equal(t, "58-08-2", record.Names.CASLike)
	assert.Len(t, record.Names.Synonyms, 3)

	// Structure
	require.Len(t, record.Structure.XYZ, 3)
	assert.Equal(t, []string{"O", "C", "H"}, record.Structure.AtomSymbols)
	require.Len(t, record.Structure.BondOrders, 2)
	assert.Equal(t, core.BondOrder{I: 0, J: 1, Order: 2}, record.Structure.BondOrders[0])

	// Properties
	assert.Equal(t, "CN1C=NC2=C1C(=O)N(C(=O)N2C)C", record.Identifiers.SMILES)
	require.NotNil(t, record.Solubility.LogP)
	assert.InDelta(t, -0.1, *record.Solubility.LogP, 1e-9)

	// View-derived fields
	require.NotNil(t, record.Thermo.StandardEnthalpy)
	assert.InDelta(t, -45.6, *record.Thermo.StandardEnthalpy, 1e-9)
	assert.Equal(t, []string{"H302", "P264", "P270"}, record.Safety.GHSCodes)
	assert.Equal(t, []string{"UV", "Mass"}, record.Spectra.Kinds)
	assert.Equal(t, "273 nm", record.Spectra.NotablePeak)

	// Tags
	assert.Equal(t, HazardHigh, record.Tags.Hazard)
	assert.Equal(t, SolubilityModerate, record.Tags.Solubility)
	assert.Equal(t, "UV, Mass spectra available", record.Tags.Spectra)
	assert.Equal(t, []core.Category{
		core.CategorySafety,
		core.CategoryPharmacology,
		core.CategorySpectroscopy,
		core.CategoryMaterials,
	}, record.Tags.Categories)

	// Provenance
	assert.Equal(t, "PubChem", record.Meta.Source)
	assert.False(t, record.Meta.Fetched.IsZero())
}

func TestNormalize_SparsePayload(t *testing.T) {
	normalizer := NewNormalizer()

	payload := &pubchem.Payload{CID: 9999}
	record, err := normalizer.Normalize(payload)
	require.NoError(t, err)

	assert.Equal(t, HazardNone, record.Tags.Hazard)
	assert.Equal(t, SolubilityUnknown, record.Tags.Solubility)
	assert.Equal(t, NoSpectraAvailable, record.Tags.Spectra)
	assert.Empty(t, record.Tags.Categories)
	assert.Equal(t, "CID 9999", record.DisplayName())
}

func TestNormalize_InvalidCID(t *testing.T) {
	normalizer := NewNormalizer()
	_, err := normalizer.Normalize(&pubchem.Payload{CID: 0})
	assert.ErrorIs(t, err, core.ErrInvalidCID)
}
