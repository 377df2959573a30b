package ai

import "fmt"

// ImagePromptStyle describes how each provider is asked to phrase its image prompts.
type ImagePromptStyle string

const (
	// StyleDescriptive is used by providers without an image backend.
	StyleDescriptive ImagePromptStyle = "a vivid, general visual description of the scene"
	StyleDalle       ImagePromptStyle = "a prompt optimized for DALL-E 3 (photorealistic, concrete subject, lighting and composition)"
	StyleImagen      ImagePromptStyle = "a prompt optimized for Google Imagen (photographic style, subject first, then setting and mood)"
)

// BuildTripPrompt embeds the traveler's request in the JSON-only instruction template.
func BuildTripPrompt(style ImagePromptStyle, request string) string {
	return fmt.Sprintf(`You are an expert travel planner. Read the traveler's request and produce a trip brief.

Traveler request:
"""
%s
"""

Respond with JSON ONLY. Do not add any text, explanation or markdown before or after the JSON.
The JSON object MUST have exactly these fields:
{
  "destination": "string (city or region the trip is about)",
  "destinationInfo": "string (2-3 sentences about the destination for this group of travelers)",
  "destinationImagePromptText": "string (%s)",
  "attractions": [
    {
      "name": "string",
      "description": "string (1-2 sentences, mention suitability for the travelers' ages)",
      "imagePromptText": "string (%s)"
    }
  ],
  "kidFriendly": "string (how suitable the destination is for children and why)",
  "bestSeason": "string (best time of year to visit and why)"
}

RULES:
- "attractions" MUST contain exactly %d entries, ordered from most to least recommended.
- Every attraction MUST have a non-empty "name".
- All values are strings except "attractions".
`, request, style, style, ExpectedAttractions)
}
