package ai

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(WithAPIKey("sk-test"))

	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
	assert.Equal(t, 120, cfg.MaxTokens)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := NewConfig()

	err := cfg.Validate()
	require.Error(t, err)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "APIKey", confErr.Field)
}

func TestValidate_MissingModels(t *testing.T) {
	cfg := NewConfig(WithAPIKey("sk-test"), WithGenerativeModel(""))
	var confErr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &confErr)
	assert.Equal(t, "GenerativeModel", confErr.Field)

	cfg = NewConfig(WithAPIKey("sk-test"), WithEmbeddingModel(""))
	require.ErrorAs(t, cfg.Validate(), &confErr)
	assert.Equal(t, "EmbeddingModel", confErr.Field)
}

func TestNormalize_AddsV1Suffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://api.example.com", "https://api.example.com/v1"},
		{"https://api.example.com/", "https://api.example.com/v1"},
		{"https://api.example.com/v1", "https://api.example.com/v1"},
	}
	for _, tt := range tests {
		cfg := NewConfig(WithAPIKey("sk-test"), WithBaseURL(tt.in))
		cfg.Normalize()
		assert.Equal(t, tt.want, cfg.BaseURL)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		status    int
	}{
		{"rate limit", errors.New("API returned unexpected status code: 429"), true, http.StatusTooManyRequests},
		{"server error", errors.New("API returned unexpected status code: 503"), true, http.StatusServiceUnavailable},
		{"unauthorized", errors.New("API returned unexpected status code: 401"), false, http.StatusUnauthorized},
		{"bad request", errors.New("API returned unexpected status code: 400"), false, http.StatusBadRequest},
		{"opaque failure", errors.New("connection refused"), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := classifyError("generate", tt.err)
			assert.Equal(t, tt.retryable, se.Retryable)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.retryable, IsRetryable(se))
		})
	}
}

func TestIsRetryable_NonServiceError(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(&ConfigurationError{Field: "APIKey", Reason: "required"}))
}
