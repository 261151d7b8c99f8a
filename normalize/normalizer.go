// Copyright 2025 RobotU AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package normalize maps raw PubChem payloads into canonical
// MoleculeRecords and derives the classification tags that drive prompt
// selection.
package normalize

import (
	"log/slog"
	"time"

	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/pubchem"
)

// Normalizer builds MoleculeRecords from fetched payloads.
type Normalizer struct {
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
	}
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		logger: slog.Default().With("component", "normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize builds the canonical record for one compound. The record is
// complete once returned: all classification tags are derived and the
// result passes core.ValidateMoleculeRecord. Enrichment is left nil.
func (n *Normalizer) Normalize(payload *pubchem.Payload) (*core.MoleculeRecord, error) {
	record := &core.MoleculeRecord{
		CID: payload.CID,
		Meta: core.Meta{
			Fetched: time.Now().UTC(),
			Source:  "PubChem",
		},
	}

	if len(payload.Record.PCCompounds) > 0 {
		n.fillStructure(record, &payload.Record.PCCompounds[0])
	}
	n.fillNames(record, payload.Synonyms.Synonyms())
	n.fillProperties(record, payload.Properties.First())
	n.fillView(record, payload.View.Record.Section)

	deriveTags(record)

	if err := core.ValidateMoleculeRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (n *Normalizer) fillStructure(record *core.MoleculeRecord, compound *pubchem.PCCompound) {
	if len(compound.Coords) > 0 && len(compound.Coords[0].Conformers) > 0 {
		conf := compound.Coords[0].Conformers[0]
		count := len(conf.X)
		if len(conf.Y) < count {
			count = len(conf.Y)
		}
		if len(conf.Z) < count {
			count = len(conf.Z)
		}
		xyz := make([][3]float64, count)
		for i := 0; i < count; i++ {
			xyz[i] = [3]float64{conf.X[i], conf.Y[i], conf.Z[i]}
		}
		record.Structure.XYZ = xyz
	}

	if len(compound.Atoms.Element) > 0 {
		symbols := make([]string, len(compound.Atoms.Element))
		for i, num := range compound.Atoms.Element {
			symbols[i] = elementSymbol(num)
		}
		record.Structure.AtomSymbols = symbols
	}

	bonds := compound.Bonds
	if len(bonds.AID1) > 0 && len(bonds.AID1) == len(bonds.AID2) && len(bonds.AID1) == len(bonds.Order) {
		orders := make([]core.BondOrder, len(bonds.AID1))
		for i := range bonds.AID1 {
			// PubChem atom ids are 1-based; BondOrder indices reference
			// the coordinate list.
			orders[i] = core.BondOrder{
				I:     bonds.AID1[i] - 1,
				J:     bonds.AID2[i] - 1,
				Order: float64(bonds.Order[i]),
			}
		}
		record.Structure.BondOrders = orders
	}

	charge := compound.Charge
	record.Structure.FormalCharge = &charge
}

func (n *Normalizer) fillNames(record *core.MoleculeRecord, synonyms []string) {
	record.Names.Synonyms = synonyms
	if len(synonyms) > 0 {
		record.Names.Preferred = synonyms[0]
	}
	for _, s := range synonyms {
		if casPattern.MatchString(s) {
			record.Names.CASLike = s
			break
		}
	}
}

func (n *Normalizer) fillProperties(record *core.MoleculeRecord, row pubchem.PropertyRow) {
	record.Identifiers.SMILES = row.CanonicalSMILES
	record.Identifiers.InChI = row.InChI
	record.Identifiers.InChIKey = row.InChIKey
	record.Solubility.LogP = row.XLogP
	if row.Charge != nil && record.Structure.FormalCharge == nil {
		record.Structure.FormalCharge = row.Charge
	}
}

func (n *Normalizer) fillView(record *core.MoleculeRecord, sections []pubchem.ViewSection) {
	if len(sections) == 0 {
		return
	}

	tinfo := sectionInformation(sections, "Thermodynamics")
	record.Thermo.StandardEnthalpy = extractNumber(tinfo, "Standard Enthalpy of Formation")
	record.Thermo.Entropy = extractNumber(tinfo, "Standard Molar Entropy")
	record.Thermo.HeatCapacity = extractNumber(tinfo, "Heat Capacity")

	record.Safety.GHSCodes = extractGHSCodes(sectionInformation(sections, "GHS Classification"))
	record.Safety.FlashPoint = extractNumber(sectionInformation(sections, "Physical Properties"), "Flash Point")
	record.Safety.LD50 = extractNumber(sectionInformation(sections, "Toxicity"), "LD50")

	record.Spectra.Kinds = spectraKinds(sections)
	if spec := findSection(sections, "Spectral Information"); spec != nil {
		record.Spectra.NotablePeak = extractPeak(spec.Section)
	}
}
