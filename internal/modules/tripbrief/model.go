// README: Trip brief planning domain types: provider slots, metrics and pipeline results.
package tripbrief

import (
	"net/url"

	"tripbrief/internal/ai"
)

type ProviderID string

const (
	ProviderAnthropic ProviderID = "anthropic"
	ProviderOpenAI    ProviderID = "openai"
	ProviderGemini    ProviderID = "gemini"
)

// ProviderOrder is the fixed presentation order of the three slots.
var ProviderOrder = []ProviderID{ProviderAnthropic, ProviderOpenAI, ProviderGemini}

// MaxGeneratedImagesPerPipeline caps how many attraction images are generated per provider.
// Later attractions get placeholders.
const MaxGeneratedImagesPerPipeline = 3

// ImageRef is a displayable image locator: a remote URL or a data: URL.
type ImageRef string

const placeholderBase = "https://placehold.co/600x400?text="

// FailedImage stands in for any image whose generation failed.
const FailedImage ImageRef = placeholderBase + "Image+generation+failed"

// Placeholder is the deterministic, network-free image for label.
func Placeholder(label string) ImageRef {
	return ImageRef(placeholderBase + url.QueryEscape(label))
}

// attractionPlaceholder relies on the schema guaranteeing a non-empty name.
func attractionPlaceholder(a ai.Attraction) ImageRef {
	return Placeholder(a.Name)
}

type Metrics struct {
	LatencyMs    int64         `json:"latencyMs"`
	InputTokens  ai.TokenCount `json:"inputTokens"`
	OutputTokens ai.TokenCount `json:"outputTokens"`
	ProviderName string        `json:"providerName"`
	ModelLabel   string        `json:"modelLabel"`
}

// PipelineResult is a Success when Err is nil and a Failure otherwise.
// A Failure carries only Metrics and Err.
type PipelineResult struct {
	Provider         ProviderID
	Brief            *ai.TripBrief
	DestinationImage ImageRef
	AttractionImages []ImageRef
	Metrics          Metrics
	Err              error
}

func (r PipelineResult) OK() bool {
	return r.Err == nil
}

func (r PipelineResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Results holds one entry per configured provider slot.
type Results map[ProviderID]PipelineResult
