package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/storage"
)

func setupIndexRepo(t *testing.T) storage.IndexRepository {
	t.Helper()
	moleculeRepo, indexRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		moleculeRepo.Close()
		indexRepo.Close()
		backend.Close()
	})
	return indexRepo
}

func entryFixture(cid core.CID, section string, seq int, vector []float32) *core.IndexEntry {
	return &core.IndexEntry{
		CID:     cid,
		Section: section,
		Seq:     seq,
		Text:    section + " text",
		Vector:  vector,
	}
}

func TestPutEntries_AssignsContentIDs(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	entry := entryFixture(2519, "summary", 0, []float32{1, 0, 0})
	stored, err := repo.PutEntries(ctx, entry)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	assert.Equal(t, core.IDFromContent("(2519,summary,0)"), stored[0].Id)
	assert.False(t, stored[0].InsertedAt.IsZero())
}

func TestPutEntries_ReingestOverwrites(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	first := entryFixture(2519, "summary", 0, []float32{1, 0, 0})
	_, err := repo.PutEntries(ctx, first)
	require.NoError(t, err)

	second := entryFixture(2519, "summary", 0, []float32{0, 1, 0})
	second.Text = "updated summary text"
	_, err = repo.PutEntries(ctx, second)
	require.NoError(t, err)

	entries, err := repo.GetEntriesByCID(ctx, 2519)
	require.NoError(t, err)
	require.Len(t, entries, 1, "same (cid,section,seq) must not duplicate")
	assert.Equal(t, "updated summary text", entries[0].Text)
}

func TestPutEntries_InvalidEntry(t *testing.T) {
	repo := setupIndexRepo(t)

	invalid := entryFixture(2519, "", 0, []float32{1})
	_, err := repo.PutEntries(context.Background(), invalid)
	assert.ErrorIs(t, err, core.ErrEmptySection)
}

func TestGetEntry_NotFound(t *testing.T) {
	repo := setupIndexRepo(t)
	_, err := repo.GetEntry(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetEntriesByCID(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	_, err := repo.PutEntries(ctx,
		entryFixture(2519, "summary", 0, []float32{1, 0, 0}),
		entryFixture(2519, "safety", 0, []float32{0, 1, 0}),
		entryFixture(702, "summary", 0, []float32{0, 0, 1}),
	)
	require.NoError(t, err)

	entries, err := repo.GetEntriesByCID(ctx, 2519)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, core.CID(2519), entry.CID)
	}
}

func TestDeleteEntriesByCID(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	_, err := repo.PutEntries(ctx,
		entryFixture(2519, "summary", 0, []float32{1, 0, 0}),
		entryFixture(702, "summary", 0, []float32{0, 0, 1}),
	)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntriesByCID(ctx, 2519))

	entries, err := repo.GetEntriesByCID(ctx, 2519)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Other molecules untouched.
	entries, err = repo.GetEntriesByCID(ctx, 702)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Deleting an unindexed molecule is not an error.
	assert.NoError(t, repo.DeleteEntriesByCID(ctx, 99999))
}

func TestFindSimilar(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	_, err := repo.PutEntries(ctx,
		entryFixture(1, "summary", 0, []float32{1, 0, 0}),
		entryFixture(2, "summary", 0, []float32{0.9, 0.1, 0}),
		entryFixture(3, "summary", 0, []float32{0, 1, 0}),
	)
	require.NoError(t, err)

	results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Ordered by similarity descending.
	assert.Equal(t, core.CID(1), results[0].Entry.CID)
	assert.Equal(t, core.CID(2), results[1].Entry.CID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFindSimilar_LimitAndThreshold(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	_, err := repo.PutEntries(ctx,
		entryFixture(1, "summary", 0, []float32{1, 0, 0}),
		entryFixture(2, "summary", 0, []float32{0.99, 0.01, 0}),
		entryFixture(3, "summary", 0, []float32{0.98, 0.02, 0}),
	)
	require.NoError(t, err)

	results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = repo.FindSimilar(ctx, []float32{1, 0, 0}, 0, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestFindSimilar_UnnormalizedVectors(t *testing.T) {
	repo := setupIndexRepo(t)
	ctx := context.Background()

	// Same direction, different magnitude: cosine similarity is 1.
	_, err := repo.PutEntries(ctx, entryFixture(1, "summary", 0, []float32{2, 0, 0}))
	require.NoError(t, err)

	results, err := repo.FindSimilar(ctx, []float32{5, 0, 0}, 0.99, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-5)
}
