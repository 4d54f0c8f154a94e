package providers

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// matchResultSchema constrains judge responses before they are accepted
// into session state.
const matchResultSchema = `{
  "type": "object",
  "required": ["scores", "winner"],
  "properties": {
    "scores": {
      "type": "object",
      "required": ["A", "B"],
      "properties": {
        "A": {"$ref": "#/definitions/score"},
        "B": {"$ref": "#/definitions/score"}
      }
    },
    "winner": {"type": "string", "enum": ["A", "B", "Tie"]}
  },
  "definitions": {
    "score": {
      "type": "object",
      "required": ["logic", "evidence", "novelty", "total", "comment"],
      "properties": {
        "logic": {"type": "integer", "minimum": 0, "maximum": 10},
        "evidence": {"type": "integer", "minimum": 0, "maximum": 10},
        "novelty": {"type": "integer", "minimum": 0, "maximum": 10},
        "total": {"type": "integer", "minimum": 0},
        "comment": {"type": "string"}
      }
    }
  }
}`

var matchResultSchemaLoader = gojsonschema.NewStringLoader(matchResultSchema)

// ValidateMatchResult checks a judge response document against the match
// result schema. It returns a descriptive error listing every violation.
func ValidateMatchResult(data []byte) error {
	result, err := gojsonschema.Validate(matchResultSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate judge response: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var issues []string
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("judge response failed validation: %s", strings.Join(issues, "; "))
}

// trimReaction normalizes a short audience reaction line.
func trimReaction(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)
	return strings.TrimSpace(text)
}
