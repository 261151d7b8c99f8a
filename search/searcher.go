package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Robotu-ai/robotu-molkit/ai"
	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/storage"
)

const (
	// wideScanLimit is the candidate pool fetched before filters run.
	wideScanLimit = 100

	// defaultMinSimilarity drops candidates with no meaningful
	// relationship to the query.
	defaultMinSimilarity = 0.25
)

// Searcher provides semantic search over the molecule index.
type Searcher struct {
	index         storage.IndexRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity overrides the similarity floor for candidates.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(index storage.IndexRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		index:         index,
		embedder:      embedder,
		minSimilarity: defaultMinSimilarity,
		logger:        slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search embeds the query, scans a wide candidate pool, applies the
// metadata filters, and returns up to maxHits results ranked by
// similarity.
func (s *Searcher) Search(ctx context.Context, query string, maxHits int, filters ...Filter) ([]*core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if maxHits <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	// Over-fetch so filters don't starve the result set.
	poolSize := wideScanLimit
	if maxHits > poolSize {
		poolSize = maxHits
	}
	candidates, err := s.index.FindSimilar(ctx, vector, s.minSimilarity, poolSize)
	if err != nil {
		s.logger.Error("error querying for similar entries", "err", err)
		return nil, err
	}

	results := make([]*core.SearchResult, 0, maxHits)
	for _, candidate := range candidates {
		if !matchAll(candidate.Entry, filters) {
			continue
		}
		results = append(results, candidate)
		if len(results) == maxHits {
			break
		}
	}

	s.logger.Debug("search complete", "query", query, "candidates", len(candidates), "results", len(results))
	return results, nil
}

// SearchMolecules runs Search and collapses the chunk-level results to
// one hit per molecule, keeping each molecule's best-scoring chunk.
func (s *Searcher) SearchMolecules(ctx context.Context, query string, maxHits int, filters ...Filter) ([]*core.SearchResult, error) {
	// Chunk-level over-fetch: several chunks may map to one molecule.
	hits, err := s.Search(ctx, query, wideScanLimit, filters...)
	if err != nil {
		return nil, err
	}

	seen := make(map[core.CID]bool)
	results := make([]*core.SearchResult, 0, maxHits)
	for _, hit := range hits {
		if seen[hit.Entry.CID] {
			continue
		}
		seen[hit.Entry.CID] = true
		results = append(results, hit)
		if len(results) == maxHits {
			break
		}
	}
	return results, nil
}
