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

package ai

import "strings"

// Config holds configuration for hosted AI service providers.
type Config struct {
	// APIKey authenticates against the hosted service. Required.
	APIKey string

	// ProjectID scopes requests to a billing project on services that
	// require one. Optional.
	ProjectID string

	// BaseURL is the base URL of the OpenAI-compatible API.
	// Example: "https://api.openai.com/v1"
	BaseURL string

	// GenerativeModel is the chat model used for blurb generation.
	GenerativeModel string

	// EmbeddingModel is the model used for text embeddings.
	EmbeddingModel string

	// MaxTokens caps the blurb completion length. A 40-70 word blurb
	// fits comfortably in the default of 120 tokens.
	MaxTokens int

	// Temperature controls sampling variety for blurb generation.
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the service API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithProjectID sets the billing project identifier.
func WithProjectID(id string) ConfigOption {
	return func(c *Config) {
		c.ProjectID = id
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithGenerativeModel sets the chat model used for blurbs.
func WithGenerativeModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerativeModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithMaxTokens caps the completion length for blurb generation.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature for blurb generation.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a Config with defaults for the hosted OpenAI
// API. The API key has no default and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://api.openai.com/v1",
		GenerativeModel: "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		MaxTokens:       120,
		Temperature:     0.7,
	}
}

// NewConfig creates a Config with default values and applies the
// provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithGenerativeModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration into canonical form. OpenAI-style
// APIs expect the /v1 suffix on the base URL; add it when missing.
func (c *Config) Normalize() {
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/v1") {
		c.BaseURL = strings.TrimSuffix(c.BaseURL, "/") + "/v1"
	}
}

// Validate checks that the configuration is complete. It normalizes
// the configuration first. A missing credential or model is a
// ConfigurationError.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" {
		return &ConfigurationError{Field: "APIKey", Reason: "required"}
	}
	if c.BaseURL == "" {
		return &ConfigurationError{Field: "BaseURL", Reason: "required"}
	}
	if c.GenerativeModel == "" {
		return &ConfigurationError{Field: "GenerativeModel", Reason: "required"}
	}
	if c.EmbeddingModel == "" {
		return &ConfigurationError{Field: "EmbeddingModel", Reason: "required"}
	}
	if c.MaxTokens <= 0 {
		return &ConfigurationError{Field: "MaxTokens", Reason: "must be positive"}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return &ConfigurationError{Field: "Temperature", Reason: "must be between 0 and 2"}
	}
	return nil
}
