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

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/Robotu-ai/robotu-molkit/ai"
	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/enrich"
	"github.com/Robotu-ai/robotu-molkit/normalize"
	"github.com/Robotu-ai/robotu-molkit/pubchem"
	"github.com/Robotu-ai/robotu-molkit/storage"
)

// defaultPoolSize matches the upstream courtesy limit of five
// concurrent requests per client.
const defaultPoolSize = 5

// Fetcher retrieves compound payloads. *pubchem.Client is the
// production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, cid core.CID) (*pubchem.Payload, error)
	ResolveName(ctx context.Context, name string) (core.CID, error)
}

// Pipeline orchestrates fetching, normalization, enrichment, and
// indexing for batches of compounds.
type Pipeline struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	enricher   *enrich.Enricher
	molecules  storage.MoleculeRepository
	index      storage.IndexRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	splitter   textsplitter.TextSplitter
	skipEnrich bool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is 5, matching the upstream per-client concurrency limit.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunking overrides the token chunk size and overlap used to split
// section text for embedding.
func WithChunking(chunkSize, chunkOverlap int) Option {
	return func(p *Pipeline) error {
		p.splitter = textsplitter.NewTokenSplitter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		)
		return nil
	}
}

// WithSkipEnrich disables blurb generation. Records are stored and
// indexed from their normalized facts only. Useful for bulk loads
// where the generation cost is deferred.
func WithSkipEnrich(skip bool) Option {
	return func(p *Pipeline) error {
		p.skipEnrich = skip
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. The enricher may be nil
// only when enrichment is skipped.
func NewPipeline(
	fetcher Fetcher,
	normalizer *normalize.Normalizer,
	enricher *enrich.Enricher,
	molecules storage.MoleculeRepository,
	index storage.IndexRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if molecules == nil {
		return nil, ErrMoleculeRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if normalizer == nil {
		normalizer = normalize.NewNormalizer()
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		fetcher:    fetcher,
		normalizer: normalizer,
		enricher:   enricher,
		molecules:  molecules,
		index:      index,
		embedder:   embedder,
		pool:       pool,
		splitter: textsplitter.NewTokenSplitter(
			textsplitter.WithChunkSize(defaultChunkSize),
			textsplitter.WithChunkOverlap(defaultChunkOverlap),
		),
		logger: slog.Default().With("component", "ingest-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Report summarizes the outcome of one batch.
type Report struct {
	mu       sync.Mutex
	Ingested []core.CID
	Failed   map[core.CID]error
}

func (r *Report) succeed(cid core.CID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Ingested = append(r.Ingested, cid)
}

func (r *Report) fail(cid core.CID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Failed == nil {
		r.Failed = make(map[core.CID]error)
	}
	r.Failed[cid] = err
}

// IngestCIDs processes a batch of compounds on the worker pool. A
// failing compound is recorded in the report and the batch continues;
// the returned error covers pipeline-level failures only.
func (p *Pipeline) IngestCIDs(ctx context.Context, cids ...core.CID) (*Report, error) {
	report := &Report{}
	var wg sync.WaitGroup

	for _, cid := range cids {
		cid := cid
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.processOne(ctx, cid); err != nil {
				p.logger.Error("ingestion failed", "cid", cid, "err", err)
				report.fail(cid, err)
				return
			}
			report.succeed(cid)
		})
		if err != nil {
			wg.Done()
			report.fail(cid, err)
		}
	}

	wg.Wait()
	return report, nil
}

// IngestNames resolves compound names to CIDs and ingests them.
// Unresolvable names are logged and skipped.
func (p *Pipeline) IngestNames(ctx context.Context, names ...string) (*Report, error) {
	var cids []core.CID
	for _, name := range names {
		cid, err := p.fetcher.ResolveName(ctx, name)
		if err != nil {
			p.logger.Warn("name resolution failed", "name", name, "err", err)
			continue
		}
		cids = append(cids, cid)
	}
	return p.IngestCIDs(ctx, cids...)
}

// processOne runs the full pipeline for a single compound.
func (p *Pipeline) processOne(ctx context.Context, cid core.CID) error {
	payload, err := p.fetcher.Fetch(ctx, cid)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	record, err := p.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	if len(payload.RawRecord) > 0 {
		if err := p.molecules.PutRawPayload(ctx, cid, payload.RawRecord); err != nil {
			return fmt.Errorf("cache raw payload: %w", err)
		}
	}

	if !p.skipEnrich && p.enricher != nil {
		enrichment, err := p.enricher.Enrich(ctx, record)
		if err != nil {
			return fmt.Errorf("enrich: %w", err)
		}
		record.Enrichment = enrichment
	}

	if err := p.molecules.PutMolecules(ctx, record); err != nil {
		return fmt.Errorf("store record: %w", err)
	}

	if err := p.indexRecord(ctx, record); err != nil {
		return fmt.Errorf("index record: %w", err)
	}

	p.logger.Info("ingested compound", "cid", cid, "name", record.DisplayName())
	return nil
}

// indexRecord chunks the record's sections, embeds the chunks in one
// batch, and replaces the molecule's index entries.
func (p *Pipeline) indexRecord(ctx context.Context, record *core.MoleculeRecord) error {
	sections := buildSections(record)
	if len(sections) == 0 {
		return nil
	}

	var entries []*core.IndexEntry
	var texts []string
	metadata := entryMetadata(record)

	for _, s := range sections {
		chunks, err := chunkSection(p.splitter, s)
		if err != nil {
			return err
		}
		for seq, chunk := range chunks {
			entries = append(entries, &core.IndexEntry{
				CID:      record.CID,
				Section:  s.name,
				Seq:      seq,
				Text:     chunk,
				Metadata: metadata,
			})
			texts = append(texts, chunk)
		}
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(entries), len(vectors))
	}
	for i := range entries {
		entries[i].Vector = vectors[i]
	}

	// Clear first so stale chunks from a previous, longer ingest of the
	// same molecule don't linger.
	if err := p.index.DeleteEntriesByCID(ctx, record.CID); err != nil {
		return err
	}
	_, err = p.index.PutEntries(ctx, entries...)
	return err
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
