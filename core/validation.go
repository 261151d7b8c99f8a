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


package core

import "fmt"

// ValidateMoleculeRecord validates a MoleculeRecord according to domain rules.
//
// Validation rules:
//   - CID must be positive
//   - Tags must carry the hazard and solubility phrases (the normalizer
//     always fills them, falling back to the "unknown" markers)
//
// NOT validated (optional by nature):
//   - Structure, Thermo, Safety, Spectra, Solubility fields (PubChem data
//     is sparse; absence is expected)
//   - Enrichment (nil until the enricher runs)
func ValidateMoleculeRecord(record *MoleculeRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.CID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidCID)
	}

	if record.Tags.Hazard == "" || record.Tags.Solubility == "" {
		return fmt.Errorf("%w: classification tags not derived", ErrInvalidRecord)
	}

	return nil
}

// ValidateIndexEntry validates an IndexEntry before it is written to the
// vector index.
//
// Validation rules:
//   - CID must be positive
//   - Section must not be empty
//   - Text must not be empty
//   - Vector must not be empty
func ValidateIndexEntry(entry *IndexEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidIndexEntry)
	}

	if entry.CID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrInvalidCID)
	}

	if entry.Section == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrEmptySection)
	}

	if entry.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrEmptyText)
	}

	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrEmptyVector)
	}

	return nil
}
