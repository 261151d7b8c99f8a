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

// Package ai defines the abstractions over hosted AI services used for
// molecule enrichment: blurb generation and text embeddings.
//
// The package is designed around three interfaces:
//
//   - Generator: produces a short descriptive blurb from a rendered prompt
//   - Embedder: generates vector embeddings from text
//   - Provider: aggregates both services behind one lifecycle
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without network access
//
// Public constructors in ai/openai return interface types so callers
// never couple to a concrete provider; the mock constructors return
// concrete types so tests can inject behavior and assert call counts.
//
// Errors from the hosted service are wrapped in ServiceError, which
// carries a Retryable flag. Rate limits, timeouts, and server-side
// failures are retryable; authentication and malformed-request errors
// are not. Callers decide the retry policy; this package only
// classifies.
package ai
