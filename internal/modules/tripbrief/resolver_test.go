package tripbrief

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tripbrief/internal/modules/imageproxy"
)

func TestResolverFallsBackOnMalformedProxyReplies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-json body", http.StatusOK, "<html>gateway</html>"},
		{"empty url", http.StatusOK, `{"url":""}`},
		{"error status", http.StatusBadGateway, `{"error":"upstream down"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := imageproxy.NewClient(srv.URL, imageproxy.BackendDalle, time.Second)
			ref, ok := NewResolver(client, zap.NewNop()).Resolve(context.Background(), "a harbor")
			assert.False(t, ok)
			assert.Equal(t, FailedImage, ref)
		})
	}
}

func TestResolverPassesThroughProxyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url":"https://img.test/harbor.png"}`))
	}))
	defer srv.Close()

	client := imageproxy.NewClient(srv.URL, imageproxy.BackendImagen, time.Second)
	ref, ok := NewResolver(client, zap.NewNop()).Resolve(context.Background(), "a harbor")
	assert.True(t, ok)
	assert.Equal(t, ImageRef("https://img.test/harbor.png"), ref)
}

func TestResolverSkipsEmptyPrompt(t *testing.T) {
	gen := &recordingGenerator{}
	ref, ok := NewResolver(gen, zap.NewNop()).Resolve(context.Background(), "  ")
	assert.False(t, ok)
	assert.Equal(t, FailedImage, ref)
	assert.Empty(t, gen.calls())
}
