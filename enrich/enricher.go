// Package enrich turns normalized molecule records into generated
// blurbs and embedding vectors. It selects the audience prompt from the
// record's tags, renders it, calls the hosted model with a bounded
// retry policy, and embeds the resulting blurb.
package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/Robotu-ai/robotu-molkit/ai"
	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/prompt"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// Enricher generates a blurb and embedding for a molecule record.
type Enricher struct {
	selector    *prompt.Selector
	generator   ai.Generator
	embedder    ai.Embedder
	model       string
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithModelName records the model identifier on produced enrichments.
func WithModelName(model string) Option {
	return func(e *Enricher) {
		e.model = model
	}
}

// WithRetryPolicy overrides the retry bound and base backoff delay for
// service calls.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(e *Enricher) {
		e.maxAttempts = maxAttempts
		e.baseDelay = baseDelay
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

// NewEnricher creates an enricher using the given template selector and
// AI services.
func NewEnricher(selector *prompt.Selector, generator ai.Generator, embedder ai.Embedder, opts ...Option) *Enricher {
	e := &Enricher{
		selector:    selector,
		generator:   generator,
		embedder:    embedder,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default().With("component", "enricher"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich selects and renders the prompt for the record, generates the
// blurb, and embeds it. The blurb is stored exactly as the model
// returned it. Service calls retry up to the configured bound; fatal
// errors and template problems surface immediately.
func (e *Enricher) Enrich(ctx context.Context, record *core.MoleculeRecord) (*core.Enrichment, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	tmpl, err := e.selector.Select(record)
	if err != nil {
		return nil, err
	}

	rendered, err := prompt.Render(tmpl, record)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("enriching record", "cid", record.CID, "category", tmpl.Category)

	var blurb string
	err = RetryWithBackoff(ctx, func() error {
		var genErr error
		blurb, genErr = e.generator.GenerateBlurb(ctx, rendered)
		return genErr
	}, e.maxAttempts, e.baseDelay)
	if err != nil {
		e.logger.Error("blurb generation failed", "cid", record.CID, "err", err)
		return nil, err
	}

	var vector []float32
	err = RetryWithBackoff(ctx, func() error {
		var embErr error
		vector, embErr = e.embedder.EmbedText(ctx, blurb)
		return embErr
	}, e.maxAttempts, e.baseDelay)
	if err != nil {
		e.logger.Error("blurb embedding failed", "cid", record.CID, "err", err)
		return nil, err
	}

	return &core.Enrichment{
		CID:         record.CID,
		Blurb:       blurb,
		Vector:      vector,
		Model:       e.model,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
