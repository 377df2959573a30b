package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, openAIChatPath, r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "hello", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"a\":1}"}}],"usage":{"prompt_tokens":12,"completion_tokens":34}}`))
	}))
	defer srv.Close()

	b := NewOpenAIBackend("sk-test", "gpt-4o", srv.URL, 0.7, 5*time.Second)
	out, err := b.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out.Text)

	in, ok := out.Usage.InputTokens.Value()
	assert.True(t, ok)
	assert.Equal(t, 12, in)
	assert.Equal(t, "34", out.Usage.OutputTokens.String())
}

func TestOpenAICompleteWithoutUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	}))
	defer srv.Close()

	out, err := NewOpenAIBackend("sk-test", "gpt-4o", srv.URL, 0.7, time.Second).Complete(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, NotAvailable, out.Usage.InputTokens.String())
	assert.Equal(t, NotAvailable, out.Usage.OutputTokens.String())
}

func TestOpenAICompleteProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIBackend("sk-bad", "gpt-4o", srv.URL, 0.7, time.Second).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProvider))

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Incorrect API key provided", perr.Message)
}

func TestOpenAICompleteNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewOpenAIBackend("sk", "gpt-4o", srv.URL, 0.7, time.Second).Complete(context.Background(), "x")
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Message, "status 502")
}

func TestOpenAICompleteMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewOpenAIBackend("", "gpt-4o", srv.URL, 0.7, time.Second).Complete(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrCredentialMissing))
	assert.False(t, called, "no request may be sent without a key")
}

func TestOpenAICompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOpenAIBackend("sk", "gpt-4o", url, 0.7, time.Second).Complete(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrTransport))
}
