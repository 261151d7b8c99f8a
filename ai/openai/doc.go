// Package openai provides the production implementation of the ai
// interfaces against OpenAI-compatible chat and embedding APIs.
package openai
