package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robotu-ai/robotu-molkit/core"
)

func TestMoleculeRecordRoundTrip(t *testing.T) {
	logp := -0.07
	record := &core.MoleculeRecord{
		CID: 2519,
		Names: core.Names{
			Preferred: "caffeine",
			CASLike:   "58-08-2",
			Synonyms:  []string{"caffeine", "58-08-2", "guaranine"},
		},
		Structure: core.Structure{
			XYZ:         [][3]float64{{0, 0, 0}, {1.4, 0, 0}},
			AtomSymbols: []string{"C", "N"},
			BondOrders:  []core.BondOrder{{I: 0, J: 1, Order: 1}},
		},
		Safety:     core.Safety{GHSCodes: []string{"H302"}},
		Solubility: core.Solubility{LogP: &logp},
		Tags: core.Tags{
			Hazard:     "moderate hazard",
			Solubility: "moderately soluble",
			Spectra:    "no spectra available",
			Categories: []core.Category{core.CategorySafety},
		},
		Meta: core.Meta{Fetched: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), Source: "pubchem"},
	}

	data, err := MarshalMoleculeRecord(record)
	require.NoError(t, err)

	decoded, err := UnmarshalMoleculeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestIndexEntryRoundTrip(t *testing.T) {
	entry := &core.IndexEntry{
		CID:        2519,
		Section:    "summary",
		Seq:        0,
		Text:       "Caffeine is a stimulant.",
		Vector:     []float32{0.1, 0.2, 0.3},
		Metadata:   map[string]string{"hazard": "moderate hazard"},
		InsertedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	entry.Id = core.IDFromContent(entry.ContentKey())

	data, err := MarshalIndexEntry(entry)
	require.NoError(t, err)

	decoded, err := UnmarshalIndexEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestUnmarshal_Corrupt(t *testing.T) {
	_, err := UnmarshalMoleculeRecord([]byte("not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalIndexEntry([]byte("{truncated"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
