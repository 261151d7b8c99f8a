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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a MoleculeRecord failed validation.
	ErrInvalidRecord = errors.New("invalid molecule record")

	// ErrInvalidCID indicates a non-positive compound identifier.
	ErrInvalidCID = errors.New("invalid compound identifier")

	// ErrInvalidIndexEntry indicates an IndexEntry failed validation.
	ErrInvalidIndexEntry = errors.New("invalid index entry")

	// ErrEmptySection indicates an index entry with an empty section name.
	ErrEmptySection = errors.New("section name cannot be empty")

	// ErrEmptyText indicates an index entry with no chunk text.
	ErrEmptyText = errors.New("chunk text cannot be empty")

	// ErrEmptyVector indicates an index entry with no embedding vector.
	ErrEmptyVector = errors.New("embedding vector cannot be empty")
)
