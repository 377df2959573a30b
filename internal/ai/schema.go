package ai

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// tripBriefSchema is checked before decoding so partially populated replies are rejected.
// The attraction count is not bounded here; a short list is a soft violation.
const tripBriefSchema = `{
  "type": "object",
  "required": ["destination", "destinationInfo", "destinationImagePromptText", "attractions", "kidFriendly", "bestSeason"],
  "properties": {
    "destination": {"type": "string", "minLength": 1},
    "destinationInfo": {"type": "string"},
    "destinationImagePromptText": {"type": "string"},
    "attractions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "imagePromptText"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "imagePromptText": {"type": "string"}
        }
      }
    },
    "kidFriendly": {"type": "string"},
    "bestSeason": {"type": "string"}
  }
}`

var tripSchema = mustCompileSchema(tripBriefSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile trip brief schema: %v", err))
	}
	return schema
}

func validateTripBrief(doc []byte) error {
	result, err := tripSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return fmt.Errorf("reply does not match trip brief schema: %s", strings.Join(errs, "; "))
}
