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

package badger

import "github.com/Robotu-ai/robotu-molkit/storage"

// NewMemoryRepositories creates in-memory molecule and index
// repositories for testing.
// Returns moleculeRepo, indexRepo, backend, and error.
// Caller must close both repos and the backend when done.
func NewMemoryRepositories() (storage.MoleculeRepository, storage.IndexRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	moleculeRepo, err := NewMoleculeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	indexRepo, err := NewIndexRepository(backend)
	if err != nil {
		moleculeRepo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return moleculeRepo, indexRepo, backend, nil
}
