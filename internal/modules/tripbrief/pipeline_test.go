package tripbrief

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripbrief/internal/ai"
	"tripbrief/internal/obs"
)

func newTestPipeline(t *testing.T, id ProviderID, backend ai.TextBackend, gen *recordingGenerator, m *obs.Metrics) *Pipeline {
	t.Helper()
	cfg := PipelineConfig{Provider: id, Backend: backend, Style: ai.StyleDescriptive}
	if gen != nil {
		cfg.Images = NewResolver(gen, zap.NewNop())
	}
	return NewPipeline(cfg, zap.NewNop(), m)
}

func TestPipelineAlignsGeneratedAndFallbackImages(t *testing.T) {
	brief := sampleBrief("Kyoto", 10)
	backend := &stubBackend{name: "OpenAI", model: "gpt-4o", text: briefJSON(t, brief)}
	gen := &recordingGenerator{}
	m := obs.NewMetrics()

	res := newTestPipeline(t, ProviderOpenAI, backend, gen, m).Run(context.Background(), kyotoRequest)
	require.True(t, res.OK(), res.ErrorMessage())

	assert.Equal(t, []string{"Kyoto skyline at dusk", "photo of sight 1", "photo of sight 2", "photo of sight 3"}, gen.calls())
	assert.Equal(t, ImageRef("https://img.test/Kyoto skyline at dusk"), res.DestinationImage)
	require.Len(t, res.AttractionImages, 10)
	for i := 0; i < 3; i++ {
		assert.Equal(t, ImageRef("https://img.test/"+brief.Attractions[i].ImagePromptText), res.AttractionImages[i])
	}
	for i := 3; i < 10; i++ {
		assert.Equal(t, Placeholder(brief.Attractions[i].Name), res.AttractionImages[i])
	}
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ImageOutcomes.WithLabelValues("openai", obs.ImageGenerated)))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.ImageOutcomes.WithLabelValues("openai", obs.ImageFallback)))
}

func TestPipelineRespectsConfiguredImageLimit(t *testing.T) {
	backend := &stubBackend{name: "Google Gemini", model: "gemini", text: briefJSON(t, sampleBrief("Oslo", 10))}
	gen := &recordingGenerator{}
	p := NewPipeline(PipelineConfig{
		Provider:           ProviderGemini,
		Backend:            backend,
		Style:              ai.StyleImagen,
		Images:             NewResolver(gen, zap.NewNop()),
		MaxGeneratedImages: 1,
	}, zap.NewNop(), nil)

	res := p.Run(context.Background(), kyotoRequest)
	require.True(t, res.OK())
	assert.Len(t, gen.calls(), 2)
	assert.Equal(t, Placeholder("Sight 2"), res.AttractionImages[1])
}

func TestPipelineWithoutImageBackendUsesPlaceholdersOnly(t *testing.T) {
	backend := &stubBackend{name: "Anthropic", model: "claude", text: briefJSON(t, sampleBrief("Kyoto", 10))}

	res := newTestPipeline(t, ProviderAnthropic, backend, nil, nil).Run(context.Background(), kyotoRequest)
	require.True(t, res.OK())
	assert.Equal(t, Placeholder("Kyoto"), res.DestinationImage)
	assert.Equal(t, ImageRef("https://placehold.co/600x400?text=Sight+1"), res.AttractionImages[0])
	for i, a := range res.Brief.Attractions {
		assert.Equal(t, Placeholder(a.Name), res.AttractionImages[i])
	}
}

func TestPipelineImageFailureStaysSuccess(t *testing.T) {
	backend := &stubBackend{name: "OpenAI", model: "gpt-4o", text: briefJSON(t, sampleBrief("Rome", 10))}
	gen := &recordingGenerator{err: errImageDown}

	res := newTestPipeline(t, ProviderOpenAI, backend, gen, nil).Run(context.Background(), kyotoRequest)
	require.True(t, res.OK())
	assert.Equal(t, FailedImage, res.DestinationImage)
	assert.Equal(t, FailedImage, res.AttractionImages[0])
	assert.Equal(t, FailedImage, res.AttractionImages[2])
	assert.Equal(t, Placeholder("Sight 4"), res.AttractionImages[3])
}

func TestPipelineExtractsJSONFromProse(t *testing.T) {
	text := "Sure! Here you go: " + briefJSON(t, sampleBrief("Rome", 10)) + " Hope that helps!"
	backend := &stubBackend{name: "Anthropic", model: "claude", text: text}

	res := newTestPipeline(t, ProviderAnthropic, backend, nil, nil).Run(context.Background(), kyotoRequest)
	require.True(t, res.OK(), res.ErrorMessage())
	assert.Equal(t, "Rome", res.Brief.Destination)
}

func TestPipelineToleratesShortAttractionList(t *testing.T) {
	backend := &stubBackend{name: "OpenAI", model: "gpt-4o", text: briefJSON(t, sampleBrief("Rome", 2))}
	gen := &recordingGenerator{}

	res := newTestPipeline(t, ProviderOpenAI, backend, gen, nil).Run(context.Background(), kyotoRequest)
	require.True(t, res.OK())
	assert.Len(t, res.AttractionImages, 2)
	assert.Len(t, gen.calls(), 3)
}

func TestPipelineParseFailure(t *testing.T) {
	backend := &stubBackend{name: "OpenAI", model: "gpt-4o", text: "I cannot help with that.", usage: ai.Usage{InputTokens: ai.Tokens(10)}}
	gen := &recordingGenerator{}
	m := obs.NewMetrics()

	res := newTestPipeline(t, ProviderOpenAI, backend, gen, m).Run(context.Background(), kyotoRequest)
	require.False(t, res.OK())
	assert.True(t, errors.Is(res.Err, ai.ErrResponseParse))
	assert.Nil(t, res.Brief)
	assert.Empty(t, gen.calls())
	_, known := res.Metrics.InputTokens.Value()
	assert.False(t, known)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PipelineFailures.WithLabelValues("openai", "response_parse")))
}

func TestPipelineProviderErrorCarriesMessage(t *testing.T) {
	backend := &stubBackend{name: "OpenAI", model: "gpt-4o", err: &ai.ProviderError{
		Kind: ai.ErrProvider, Provider: "OpenAI", Message: "Incorrect API key provided",
	}}

	res := newTestPipeline(t, ProviderOpenAI, backend, nil, nil).Run(context.Background(), kyotoRequest)
	require.False(t, res.OK())
	assert.Contains(t, res.ErrorMessage(), "Incorrect API key provided")
	assert.Equal(t, "OpenAI", res.Metrics.ProviderName)
	assert.Equal(t, "gpt-4o", res.Metrics.ModelLabel)
}

func TestPipelineTokensNotAvailable(t *testing.T) {
	backend := &stubBackend{name: "Anthropic", model: "claude", text: briefJSON(t, sampleBrief("Kyoto", 10))}

	res := newTestPipeline(t, ProviderAnthropic, backend, nil, nil).Run(context.Background(), kyotoRequest)
	require.True(t, res.OK())

	raw, err := json.Marshal(res.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"inputTokens":"not available"`)
	assert.Contains(t, string(raw), `"outputTokens":"not available"`)
}

func TestPipelineReportsUsageAndLatency(t *testing.T) {
	backend := &stubBackend{
		name: "OpenAI", model: "gpt-4o",
		text:  briefJSON(t, sampleBrief("Kyoto", 10)),
		usage: ai.Usage{InputTokens: ai.Tokens(120), OutputTokens: ai.Tokens(900)},
	}
	p := newTestPipeline(t, ProviderOpenAI, backend, &recordingGenerator{}, nil)
	base := time.Unix(1700000000, 0)
	ticks := 0
	p.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks-1) * 1500 * time.Millisecond)
	}

	res := p.Run(context.Background(), kyotoRequest)
	require.True(t, res.OK())
	assert.Equal(t, int64(1500), res.Metrics.LatencyMs)
	n, known := res.Metrics.OutputTokens.Value()
	assert.True(t, known)
	assert.Equal(t, 900, n)
}

func TestPipelinePromptUsesStyle(t *testing.T) {
	backend := &stubBackend{name: "Google Gemini", model: "gemini", text: briefJSON(t, sampleBrief("Kyoto", 10))}
	p := NewPipeline(PipelineConfig{Provider: ProviderGemini, Backend: backend, Style: ai.StyleImagen}, zap.NewNop(), nil)

	p.Run(context.Background(), kyotoRequest)
	prompt, _ := backend.prompt.Load().(string)
	assert.Contains(t, prompt, kyotoRequest)
	assert.Contains(t, prompt, string(ai.StyleImagen))
}

func TestPipelineRejectsNamelessAttraction(t *testing.T) {
	brief := sampleBrief("Rome", 10)
	brief.Attractions[4].Name = ""
	backend := &stubBackend{name: "Anthropic", model: "claude", text: briefJSON(t, brief)}

	res := newTestPipeline(t, ProviderAnthropic, backend, nil, nil).Run(context.Background(), kyotoRequest)
	require.False(t, res.OK())
	assert.ErrorIs(t, res.Err, ai.ErrResponseParse)
}
