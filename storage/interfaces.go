package storage

import (
	"context"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds index entries similar to the given vector.
	// Returns entries with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MoleculeRepository provides operations for normalized molecule
// records and the raw payload cache.
type MoleculeRepository interface {
	Repository

	// PutMolecules stores one or more molecule records, keyed by CID.
	// Existing records for the same CID are overwritten.
	PutMolecules(ctx context.Context, records ...*core.MoleculeRecord) error

	// GetMolecule retrieves a single record by CID.
	// Returns ErrNotFound if the record doesn't exist.
	GetMolecule(ctx context.Context, cid core.CID) (*core.MoleculeRecord, error)

	// GetMolecules retrieves multiple records by CID.
	// Returns only the records that exist (no error for missing records).
	GetMolecules(ctx context.Context, cids ...core.CID) ([]*core.MoleculeRecord, error)

	// DeleteMolecule removes a record and its raw payload by CID.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteMolecule(ctx context.Context, cid core.CID) error

	// ListCIDs returns the CIDs of all stored records, ascending.
	ListCIDs(ctx context.Context) ([]core.CID, error)

	// PutRawPayload caches the raw upstream response for a CID, so a
	// record can be re-normalized without another network fetch.
	PutRawPayload(ctx context.Context, cid core.CID, payload []byte) error

	// GetRawPayload retrieves the cached raw response for a CID.
	// Returns ErrNotFound if nothing is cached.
	GetRawPayload(ctx context.Context, cid core.CID) ([]byte, error)
}

// IndexRepository provides operations for the vector index of embedded
// text chunks.
type IndexRepository interface {
	Repository

	// PutEntries stores index entries. Entries with Id=0 get a
	// content-based ID from their (cid, section, seq) triple, so
	// re-ingesting a molecule overwrites rather than duplicates.
	// Sets InsertedAt if not already set.
	// Returns the entries with IDs and timestamps populated.
	PutEntries(ctx context.Context, entries ...*core.IndexEntry) ([]*core.IndexEntry, error)

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.IndexEntry, error)

	// GetEntriesByCID retrieves all entries belonging to a molecule.
	GetEntriesByCID(ctx context.Context, cid core.CID) ([]*core.IndexEntry, error)

	// DeleteEntriesByCID removes all entries belonging to a molecule.
	// Deleting a molecule with no entries is not an error.
	DeleteEntriesByCID(ctx context.Context, cid core.CID) error
}
