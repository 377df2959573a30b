package tripbrief

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"tripbrief/internal/ai"
)

const kyotoRequest = "Planning a trip to Kyoto with my family of 4, 2 adults and 2 kids ages 8 and 11"

func sampleBrief(destination string, n int) ai.TripBrief {
	b := ai.TripBrief{
		Destination:                destination,
		DestinationInfo:            destination + " is great for families.",
		DestinationImagePromptText: destination + " skyline at dusk",
		KidFriendly:                "Very",
		BestSeason:                 "Spring",
	}
	for i := 1; i <= n; i++ {
		b.Attractions = append(b.Attractions, ai.Attraction{
			Name:            fmt.Sprintf("Sight %d", i),
			Description:     "Worth a visit.",
			ImagePromptText: fmt.Sprintf("photo of sight %d", i),
		})
	}
	return b
}

func briefJSON(t *testing.T, b ai.TripBrief) string {
	t.Helper()
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	return string(raw)
}

type stubBackend struct {
	name    string
	model   string
	text    string
	usage   ai.Usage
	err     error
	panicV  any
	calls   atomic.Int32
	ctxDone atomic.Bool
	prompt  atomic.Value
}

func (s *stubBackend) Name() string  { return s.name }
func (s *stubBackend) Model() string { return s.model }

func (s *stubBackend) Complete(ctx context.Context, prompt string) (*ai.Completion, error) {
	s.calls.Add(1)
	s.prompt.Store(prompt)
	if ctx.Err() != nil {
		s.ctxDone.Store(true)
	}
	if s.panicV != nil {
		panic(s.panicV)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Completion{Text: s.text, Usage: s.usage}, nil
}

type recordingGenerator struct {
	mu      sync.Mutex
	prompts []string
	err     error
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	return "https://img.test/" + prompt, nil
}

func (g *recordingGenerator) calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

var errImageDown = errors.New("image backend down")
