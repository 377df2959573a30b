package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ExpectedAttractions is how many attractions the prompt asks every provider for.
const ExpectedAttractions = 10

// NotAvailable is reported in place of a token count the provider did not return.
const NotAvailable = "not available"

// Attraction is one sight inside a TripBrief.
type Attraction struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ImagePromptText string `json:"imagePromptText"`
}

// TripBrief is the structured record each provider is asked to return.
type TripBrief struct {
	Destination                string       `json:"destination"`
	DestinationInfo            string       `json:"destinationInfo"`
	DestinationImagePromptText string       `json:"destinationImagePromptText"`
	Attractions                []Attraction `json:"attractions"`
	KidFriendly                string       `json:"kidFriendly"`
	BestSeason                 string       `json:"bestSeason"`
}

// TokenCount is either a provider-reported count or NotAvailable. The zero value is NotAvailable.
type TokenCount struct {
	n     int
	known bool
}

// Tokens wraps a count the provider reported.
func Tokens(n int) TokenCount {
	return TokenCount{n: n, known: true}
}

// Value returns the count and whether the provider reported it.
func (t TokenCount) Value() (int, bool) {
	return t.n, t.known
}

func (t TokenCount) String() string {
	if !t.known {
		return NotAvailable
	}
	return strconv.Itoa(t.n)
}

// MarshalJSON encodes a number, or the literal "not available" string.
func (t TokenCount) MarshalJSON() ([]byte, error) {
	if !t.known {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(t.n)
}

// UnmarshalJSON accepts either form MarshalJSON produces.
func (t *TokenCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Tokens(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("token count: %w", err)
	}
	if s != NotAvailable {
		return fmt.Errorf("token count: unexpected value %q", s)
	}
	*t = TokenCount{}
	return nil
}

// Usage is the provider's own token accounting for one call.
type Usage struct {
	InputTokens  TokenCount
	OutputTokens TokenCount
}

// Completion is the raw text reply of a text backend plus its usage record.
type Completion struct {
	Text  string
	Usage Usage
}
