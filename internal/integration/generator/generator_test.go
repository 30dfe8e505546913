package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/entity"
	pkgRetry "github.com/Rohang10/saas-copilot/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            url,
			Token:          "groq-key",
			RequestTimeout: 2 * time.Second,
		},
		ChatEndpoint: "/chat/completions",
		Model:        "llama-3.1-8b-instant",
		Temperature:  0.2,
		Retry: pkgRetry.RetryConfig{
			Attempts: 2,
			Delay:    time.Millisecond,
			MaxDelay: 2 * time.Millisecond,
			Timeout:  5 * time.Second,
		},
	}
}

type fakeCounter struct {
	calls int
	err   error
}

func (c *fakeCounter) Count(text string) (int, error) {
	c.calls++
	return len(text) / 4, c.err
}

func TestConnector_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))

		var req entity.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b-instant", req.Model)
		assert.InDelta(t, 0.2, req.Temperature, 1e-9)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, systemPrompt, req.Messages[0].Content)
			assert.Equal(t, "user", req.Messages[1].Role)
			assert.Equal(t, "the prompt", req.Messages[1].Content)
		}

		json.NewEncoder(w).Encode(entity.ChatCompletionResponse{
			Choices: []entity.ChatCompletionChoice{
				{Message: entity.ChatMessage{Role: "assistant", Content: "  Go to Settings > Billing.\n"}},
			},
		})
	}))
	defer srv.Close()

	counter := &fakeCounter{}
	answer, err := NewConnector(testConfig(srv.URL), counter, zap.NewNop()).Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "Go to Settings > Billing.", answer)
	assert.Equal(t, 1, counter.calls)
}

func TestConnector_GenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewConnector(testConfig(srv.URL), nil, zap.NewNop()).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, entity.ErrEmptyGeneration)
}

func TestConnector_GenerateCounterFailureIsIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	counter := &fakeCounter{err: errors.New("no ranks")}
	answer, err := NewConnector(testConfig(srv.URL), counter, zap.NewNop()).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
}

func TestConnector_GenerateUnauthorizedIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewConnector(testConfig(srv.URL), nil, zap.NewNop()).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestConnector_GenerateRateLimitedIsRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewConnector(testConfig(srv.URL), nil, zap.NewNop()).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestMockConnector_Generate(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	answer, err := m.Generate(context.Background(), "Intro\n\nContext:\nUpdate billing in Settings.\nMore.\n\nQuestion:\nq")
	require.NoError(t, err)
	assert.Equal(t, "Update billing in Settings.", answer)

	answer, err = m.Generate(context.Background(), "no context here")
	require.NoError(t, err)
	assert.Equal(t, "I do not have enough information to answer this.", answer)
}
