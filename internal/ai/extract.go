package ai

import (
	"encoding/json"
	"fmt"

	"tripbrief/internal/jsonutil"
)

// ExtractTripBrief locates the JSON object in a free-form reply, checks it against
// the trip brief schema and decodes it. Any failure is a parse error; nothing is retried.
func ExtractTripBrief(raw string) (TripBrief, error) {
	span, err := jsonutil.ExtractObject(raw)
	if err != nil {
		return TripBrief{}, fmt.Errorf("%w (reply length: %d)", err, len(raw))
	}
	if err := validateTripBrief([]byte(span)); err != nil {
		return TripBrief{}, err
	}

	var brief TripBrief
	if err := json.Unmarshal([]byte(span), &brief); err != nil {
		return TripBrief{}, fmt.Errorf("decode trip brief: %w", err)
	}
	return brief, nil
}
