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

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/storage"
)

// IndexRepository implements storage.IndexRepository for BadgerDB.
// Entries are content-addressed: the ID is derived from the
// (cid, section, seq) triple, so re-ingesting a molecule overwrites its
// existing entries instead of duplicating them.
type IndexRepository struct {
	backend *Backend
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates a new IndexRepository.
func NewIndexRepository(backend *Backend) (storage.IndexRepository, error) {
	return &IndexRepository{backend: backend}, nil
}

// Close is a no-op; the index repository holds no resources beyond the
// shared backend.
func (r *IndexRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *IndexRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *IndexRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutEntries stores index entries, assigning content-based IDs and
// timestamps where missing, and maintains the per-CID secondary index.
func (r *IndexRepository) PutEntries(ctx context.Context, entries ...*core.IndexEntry) ([]*core.IndexEntry, error) {
	for _, entry := range entries {
		if err := core.ValidateIndexEntry(entry); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.Id == 0 {
				entry.Id = core.IDFromContent(entry.ContentKey())
			}
			if entry.InsertedAt.IsZero() {
				entry.InsertedAt = time.Now().UTC()
			}

			value, err := storage.MarshalIndexEntry(entry)
			if err != nil {
				return err
			}
			if err := tx.Set(makeIndexEntryKey(entry.Id), value); err != nil {
				return err
			}
			// Secondary index: cid -> entry IDs.
			if err := tx.Set(makeIndexCIDKey(entry.CID, entry.Id), nil); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry retrieves a single entry by ID.
func (r *IndexRepository) GetEntry(ctx context.Context, id core.ID) (*core.IndexEntry, error) {
	var entry *core.IndexEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndexEntryKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = storage.UnmarshalIndexEntry(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntriesByCID retrieves all entries belonging to a molecule via the
// secondary index.
func (r *IndexRepository) GetEntriesByCID(ctx context.Context, cid core.CID) ([]*core.IndexEntry, error) {
	ids, err := r.entryIDs(cid)
	if err != nil {
		return nil, err
	}

	entries := make([]*core.IndexEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := r.GetEntry(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteEntriesByCID removes all entries belonging to a molecule.
func (r *IndexRepository) DeleteEntriesByCID(ctx context.Context, cid core.CID) error {
	ids, err := r.entryIDs(cid)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := tx.Delete(makeIndexEntryKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := tx.Delete(makeIndexCIDKey(cid, id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

func (r *IndexRepository) entryIDs(cid core.CID) ([]core.ID, error) {
	var ids []core.ID

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialIndexCIDKey(cid)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			ids = append(ids, entryIDFromCIDKey(iter.Item().Key()))
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return ids, nil
}
