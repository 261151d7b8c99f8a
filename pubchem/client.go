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


// Package pubchem is a thin client for the PubChem PUG REST and PUG-View
// APIs. It fetches the four payloads the normalizer needs (3-D record,
// synonyms, property table, annotated view) and respects PubChem's
// published rate limits: 5 requests per second and 400 per minute.
package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Robotu-ai/robotu-molkit/core"
)

const (
	defaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov"
	defaultTimeout = 30 * time.Second

	maxRequestsPerSecond = 5
	maxRequestsPerMinute = 400

	recordPathFmt     = "/rest/pug/compound/cid/%d/record/JSON?record_type=3d"
	synonymsPathFmt   = "/rest/pug/compound/cid/%d/synonyms/JSON"
	propertiesPathFmt = "/rest/pug/compound/cid/%d/property/CanonicalSMILES,InChI,InChIKey,XLogP,Charge/JSON"
	viewPathFmt       = "/rest/pug_view/data/compound/%d/JSON"
	nameToCIDPathFmt  = "/rest/pug/compound/name/%s/cids/JSON"
)

// Client issues rate-limited requests against the PubChem API.
// It is safe for concurrent use.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	secondLimiter *rate.Limiter
	minuteLimiter *rate.Limiter
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the PubChem base URL. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a PubChem client with the default rate limits and a
// 30 second per-request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		secondLimiter: rate.NewLimiter(rate.Limit(maxRequestsPerSecond), maxRequestsPerSecond),
		minuteLimiter: rate.NewLimiter(rate.Every(time.Minute/maxRequestsPerMinute), maxRequestsPerMinute),
		logger:        slog.Default().With("component", "pubchem-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Payload bundles the decoded responses for one compound. Record is
// always present; the other three may be zero-valued when the
// corresponding endpoint had nothing for the CID. RawRecord holds the
// verbatim record body for caching.
type Payload struct {
	CID        core.CID
	Record     RecordResponse
	Synonyms   SynonymsResponse
	Properties PropertiesResponse
	View       ViewResponse
	RawRecord  []byte
}

// Fetch retrieves all four payloads for a CID. A missing full record
// means the CID does not resolve and yields ErrNotFound; missing
// synonyms, properties, or view data is tolerated and logged, since
// PubChem coverage is sparse for many compounds.
func (c *Client) Fetch(ctx context.Context, cid core.CID) (*Payload, error) {
	if cid <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCID, cid)
	}

	payload := &Payload{CID: cid}

	raw, err := c.getJSON(ctx, fmt.Sprintf(recordPathFmt, cid), &payload.Record)
	if err != nil {
		return nil, err
	}
	payload.RawRecord = raw

	// The remaining payloads are independent; fetch them concurrently.
	// The rate limiters still gate each request.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := c.getJSON(gctx, fmt.Sprintf(synonymsPathFmt, cid), &payload.Synonyms); err != nil {
			c.logger.Warn("synonyms unavailable", "cid", cid, "err", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := c.getJSON(gctx, fmt.Sprintf(propertiesPathFmt, cid), &payload.Properties); err != nil {
			c.logger.Warn("properties unavailable", "cid", cid, "err", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := c.getJSON(gctx, fmt.Sprintf(viewPathFmt, cid), &payload.View); err != nil {
			c.logger.Warn("annotated view unavailable", "cid", cid, "err", err)
		}
		return nil
	})
	g.Wait()

	return payload, nil
}

// ResolveName resolves a compound name to its first matching CID.
// Returns ErrNotFound if PubChem knows no compound by that name.
func (c *Client) ResolveName(ctx context.Context, name string) (core.CID, error) {
	var resp CIDsResponse
	path := fmt.Sprintf(nameToCIDPathFmt, url.PathEscape(name))
	if _, err := c.getJSON(ctx, path, &resp); err != nil {
		return 0, err
	}
	if len(resp.IdentifierList.CID) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return core.CID(resp.IdentifierList.CID[0]), nil
}

// getJSON performs one rate-limited GET and decodes the JSON body into
// out. The raw body is returned for callers that cache it.
func (c *Client) getJSON(ctx context.Context, path string, out any) ([]byte, error) {
	// Both limiters must admit the request.
	if err := c.secondLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := c.minuteLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fullURL)
	case res.StatusCode != http.StatusOK:
		return nil, &StatusError{URL: fullURL, StatusCode: res.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	return body, nil
}
