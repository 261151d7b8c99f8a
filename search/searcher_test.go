package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robotu-ai/robotu-molkit/ai/mock"
	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/storage"
	"github.com/Robotu-ai/robotu-molkit/storage/badger"
)

// queryVectors maps test texts to fixed three-dimensional vectors so
// similarity ordering is under the test's control.
var queryVectors = map[string][]float32{
	"stimulant":      {1, 0, 0},
	"caffeine chunk": {0.95, 0.05, 0},
	"ethanol chunk":  {0.7, 0.3, 0},
	"benzene chunk":  {0, 1, 0},
}

func setupSearcher(t *testing.T) (*Searcher, storage.IndexRepository) {
	t.Helper()

	moleculeRepo, indexRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		moleculeRepo.Close()
		indexRepo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if v, ok := queryVectors[text]; ok {
			return v, nil
		}
		return []float32{0, 0, 1}, nil
	}

	searcher, err := NewSearcher(indexRepo, embedder, WithMinSimilarity(0.1))
	require.NoError(t, err)
	return searcher, indexRepo
}

func seedEntries(t *testing.T, repo storage.IndexRepository) {
	t.Helper()
	entries := []*core.IndexEntry{
		{
			CID: 2519, Section: "summary", Seq: 0,
			Text:   "caffeine chunk",
			Vector: queryVectors["caffeine chunk"],
			Metadata: map[string]string{
				"name": "caffeine", "hazard": "moderate hazard", "logp": "-0.07",
			},
		},
		{
			CID: 702, Section: "summary", Seq: 0,
			Text:   "ethanol chunk",
			Vector: queryVectors["ethanol chunk"],
			Metadata: map[string]string{
				"name": "ethanol", "hazard": "high hazard", "logp": "-0.31",
			},
		},
		{
			CID: 241, Section: "summary", Seq: 0,
			Text:   "benzene chunk",
			Vector: queryVectors["benzene chunk"],
			Metadata: map[string]string{
				"name": "benzene", "hazard": "high hazard", "logp": "2.13",
			},
		},
	}
	_, err := repo.PutEntries(context.Background(), entries...)
	require.NoError(t, err)
}

func TestSearch_RankedBySimilarity(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	results, err := searcher.Search(context.Background(), "stimulant", 10)
	require.NoError(t, err)
	require.Len(t, results, 2, "benzene is orthogonal to the query and below the floor")

	assert.Equal(t, core.CID(2519), results[0].Entry.CID)
	assert.Equal(t, core.CID(702), results[1].Entry.CID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_EqualsFilter(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	results, err := searcher.Search(context.Background(), "stimulant", 10,
		Equals("hazard", "high hazard"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.CID(702), results[0].Entry.CID)
}

func TestSearch_OneOfFilter(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	results, err := searcher.Search(context.Background(), "stimulant", 10,
		OneOf("name", "caffeine", "ethanol"))
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_RangeFilter(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	results, err := searcher.Search(context.Background(), "stimulant", 10,
		Range("logp", -1.0, 0.0))
	require.NoError(t, err)
	assert.Len(t, results, 2, "caffeine and ethanol fall in the logP range")

	results, err = searcher.Search(context.Background(), "stimulant", 10,
		Range("logp", 1.0, 3.0))
	require.NoError(t, err)
	assert.Empty(t, results, "benzene matches the range but not the similarity floor")
}

func TestSearch_CombinedFilters(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	results, err := searcher.Search(context.Background(), "stimulant", 10,
		Equals("hazard", "high hazard"),
		Range("logp", -1.0, 0.0))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ethanol", results[0].Entry.Metadata["name"])
}

func TestSearch_SectionFilter(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	_, err := repo.PutEntries(context.Background(), &core.IndexEntry{
		CID: 2519, Section: "safety", Seq: 0,
		Text:     "caffeine safety chunk",
		Vector:   []float32{0.9, 0.1, 0},
		Metadata: map[string]string{"name": "caffeine"},
	})
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "stimulant", 10,
		SectionIs("safety"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "safety", results[0].Entry.Section)
}

func TestSearch_MaxHits(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	results, err := searcher.Search(context.Background(), "stimulant", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.CID(2519), results[0].Entry.CID)
}

func TestSearch_InvalidInput(t *testing.T) {
	searcher, _ := setupSearcher(t)

	_, err := searcher.Search(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = searcher.Search(context.Background(), "stimulant", 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestSearchMolecules_OneHitPerCID(t *testing.T) {
	searcher, repo := setupSearcher(t)
	seedEntries(t, repo)

	// Second chunk for caffeine, slightly less similar than the first.
	_, err := repo.PutEntries(context.Background(), &core.IndexEntry{
		CID: 2519, Section: "safety", Seq: 0,
		Text:     "caffeine safety chunk",
		Vector:   []float32{0.9, 0.1, 0},
		Metadata: map[string]string{"name": "caffeine"},
	})
	require.NoError(t, err)

	results, err := searcher.SearchMolecules(context.Background(), "stimulant", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, core.CID(2519), results[0].Entry.CID)
	assert.Equal(t, "summary", results[0].Entry.Section, "best chunk wins for the molecule")
}

func TestNewSearcher_MissingDependencies(t *testing.T) {
	_, err := NewSearcher(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrIndexRepositoryRequired)

	_, index, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewSearcher(index, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
