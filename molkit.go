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

// Package molkit turns PubChem compound data into an enriched, locally
// searchable molecule library: records are fetched and normalized,
// summarized by a hosted model, embedded, and indexed for semantic
// search. Library is the top-level entry point wiring storage, the
// PubChem client, prompts, and the AI provider together.
package molkit

import (
	"log/slog"

	"github.com/Robotu-ai/robotu-molkit/ai"
	"github.com/Robotu-ai/robotu-molkit/ai/openai"
	"github.com/Robotu-ai/robotu-molkit/enrich"
	"github.com/Robotu-ai/robotu-molkit/ingest"
	"github.com/Robotu-ai/robotu-molkit/normalize"
	"github.com/Robotu-ai/robotu-molkit/prompt"
	"github.com/Robotu-ai/robotu-molkit/pubchem"
	"github.com/Robotu-ai/robotu-molkit/search"
	"github.com/Robotu-ai/robotu-molkit/storage"
	"github.com/Robotu-ai/robotu-molkit/storage/badger"
)

// Library bundles the storage backend, PubChem client, prompt store,
// and AI provider behind one lifecycle.
type Library struct {
	backend   *badger.Backend
	molecules storage.MoleculeRepository
	index     storage.IndexRepository
	fetcher   *pubchem.Client
	store     *prompt.Store
	provider  ai.Provider
	modelName string
	logger    *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig    *ai.Config
	provider    ai.Provider
	templateDir string
	pubchemOpts []pubchem.Option
	inMemory    bool
}

// WithAIConfig sets the hosted-service configuration used to build the
// default OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the default
// OpenAI-compatible one. Used for tests and alternative backends.
func WithProvider(provider ai.Provider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// WithTemplateDir overlays prompt templates from a directory over the
// embedded defaults.
func WithTemplateDir(dir string) LibraryOption {
	return func(o *libraryOptions) {
		o.templateDir = dir
	}
}

// WithPubChemOptions forwards options to the PubChem client.
func WithPubChemOptions(opts ...pubchem.Option) LibraryOption {
	return func(o *libraryOptions) {
		o.pubchemOpts = append(o.pubchemOpts, opts...)
	}
}

// WithInMemoryStorage keeps all data in memory. Used for tests and
// throwaway sessions.
func WithInMemoryStorage() LibraryOption {
	return func(o *libraryOptions) {
		o.inMemory = true
	}
}

// NewLibrary opens (or creates) a molecule library at filePath.
func NewLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	molecules, err := badger.NewMoleculeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	index, err := badger.NewIndexRepository(backend)
	if err != nil {
		molecules.Close()
		backend.Close()
		return nil, err
	}

	var storeOpts []prompt.StoreOption
	if options.templateDir != "" {
		storeOpts = append(storeOpts, prompt.WithTemplateDir(options.templateDir))
	}
	store, err := prompt.NewStore(storeOpts...)
	if err != nil {
		index.Close()
		molecules.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	modelName := ""
	if provider == nil {
		config := options.aiConfig
		if config == nil {
			config = ai.DefaultConfig()
		}
		provider, err = openai.NewProvider(config)
		if err != nil {
			index.Close()
			molecules.Close()
			backend.Close()
			return nil, err
		}
		modelName = config.GenerativeModel
	}

	return &Library{
		backend:   backend,
		molecules: molecules,
		index:     index,
		fetcher:   pubchem.NewClient(options.pubchemOpts...),
		store:     store,
		provider:  provider,
		modelName: modelName,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider and storage resources.
func (l *Library) Close() error {
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
	}
	if err := l.index.Close(); err != nil {
		l.logger.Error("error closing index repository", "err", err)
		return err
	}
	if err := l.molecules.Close(); err != nil {
		l.logger.Error("error closing molecule repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// MoleculeRepository returns the molecule record store.
func (l *Library) MoleculeRepository() storage.MoleculeRepository {
	return l.molecules
}

// IndexRepository returns the vector index store.
func (l *Library) IndexRepository() storage.IndexRepository {
	return l.index
}

// PromptStore returns the prompt template store.
func (l *Library) PromptStore() *prompt.Store {
	return l.store
}

// PubChem returns the PubChem client.
func (l *Library) PubChem() *pubchem.Client {
	return l.fetcher
}

// NewEnricher builds an enricher over the library's prompt store and
// AI provider.
func (l *Library) NewEnricher(opts ...enrich.Option) *enrich.Enricher {
	if l.modelName != "" {
		opts = append([]enrich.Option{enrich.WithModelName(l.modelName)}, opts...)
	}
	return enrich.NewEnricher(prompt.NewSelector(l.store), l.provider.Generator(), l.provider.Embedder(), opts...)
}

// NewIngestPipeline builds an ingestion pipeline wired to the library's
// components.
func (l *Library) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(
		l.fetcher,
		normalize.NewNormalizer(),
		l.NewEnricher(),
		l.molecules,
		l.index,
		l.provider.Embedder(),
		opts...,
	)
}

// NewSearcher builds a semantic searcher over the library's index.
func (l *Library) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(l.index, l.provider.Embedder(), opts...)
}
