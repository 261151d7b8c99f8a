package badger

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/storage"
)

// MoleculeRepository implements storage.MoleculeRepository for BadgerDB.
type MoleculeRepository struct {
	backend *Backend
}

var _ storage.MoleculeRepository = (*MoleculeRepository)(nil)

// NewMoleculeRepository creates a new MoleculeRepository.
func NewMoleculeRepository(backend *Backend) (storage.MoleculeRepository, error) {
	return &MoleculeRepository{backend: backend}, nil
}

// Close is a no-op; the molecule repository holds no resources beyond
// the shared backend.
func (r *MoleculeRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *MoleculeRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *MoleculeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutMolecules stores molecule records keyed by CID, overwriting any
// existing record for the same CID.
func (r *MoleculeRepository) PutMolecules(ctx context.Context, records ...*core.MoleculeRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Meta.Fetched.IsZero() {
				record.Meta.Fetched = time.Now().UTC()
			}
			value, err := storage.MarshalMoleculeRecord(record)
			if err != nil {
				return err
			}
			if err := tx.Set(makeMoleculeKey(record.CID), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMolecule retrieves a single record by CID.
func (r *MoleculeRepository) GetMolecule(ctx context.Context, cid core.CID) (*core.MoleculeRecord, error) {
	var record *core.MoleculeRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMoleculeKey(cid))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalMoleculeRecord(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetMolecules retrieves multiple records, skipping missing CIDs.
func (r *MoleculeRepository) GetMolecules(ctx context.Context, cids ...core.CID) ([]*core.MoleculeRecord, error) {
	records := make([]*core.MoleculeRecord, 0, len(cids))
	for _, cid := range cids {
		record, err := r.GetMolecule(ctx, cid)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// DeleteMolecule removes the record and its cached raw payload.
func (r *MoleculeRepository) DeleteMolecule(ctx context.Context, cid core.CID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMoleculeKey(cid)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		// Raw payload may or may not be cached.
		if err := tx.Delete(makeRawPayloadKey(cid)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListCIDs returns all stored CIDs in ascending order. Molecule keys
// are written as decimal strings, so the CID is recovered from the key
// suffix and the result sorted numerically.
func (r *MoleculeRepository) ListCIDs(ctx context.Context) ([]core.CID, error) {
	var cids []core.CID

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(moleculePrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			suffix := strings.TrimPrefix(key, moleculePrefix+":")
			n, err := strconv.ParseInt(suffix, 10, 64)
			if err != nil {
				continue
			}
			cids = append(cids, core.CID(n))
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Lexicographic key order is not numeric order.
	slices.Sort(cids)
	return cids, nil
}

// PutRawPayload caches the raw upstream response for a CID.
func (r *MoleculeRepository) PutRawPayload(ctx context.Context, cid core.CID, payload []byte) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRawPayloadKey(cid), payload); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRawPayload retrieves the cached raw response for a CID.
func (r *MoleculeRepository) GetRawPayload(ctx context.Context, cid core.CID) ([]byte, error) {
	var payload []byte

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRawPayloadKey(cid))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	return payload, nil
}
