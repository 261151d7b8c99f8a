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

package openai

import (
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Robotu-ai/robotu-molkit/ai"
)

var errEmptyResponse = errors.New("model returned no choices")

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages generator and embedder instances sharing one credential.
type Provider struct {
	config    *ai.Config
	generator *Generator
	embedder  *Embedder
	logger    *slog.Logger
}

// NewProvider creates a new AI provider for OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		generator: generator,
		embedder:  embedder,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Generator returns the blurb generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}

// clientOptions assembles the shared langchaingo client options from
// the config, plus any call-specific extras.
func clientOptions(config *ai.Config, extra ...openai.Option) []openai.Option {
	opts := []openai.Option{
		openai.WithBaseURL(config.BaseURL),
		openai.WithToken(config.APIKey),
	}
	if config.ProjectID != "" {
		opts = append(opts, openai.WithOrganization(config.ProjectID))
	}
	return append(opts, extra...)
}
