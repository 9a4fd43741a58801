package prompt

import (
	"strings"

	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"
)

// StructuredReply is the JSON shape requested from providers that support a
// response schema.
type StructuredReply struct {
	Scores []StructuredScore `json:"scores" jsonschema:"description=One entry per evaluation axis"`
}

type StructuredScore struct {
	Axis   string `json:"axis" jsonschema:"enum=胆力,enum=好奇心,enum=論理性,enum=協調性"`
	Score  int    `json:"score" jsonschema:"description=Score out of 10"`
	Reason string `json:"reason"`
}

// SchemaName is the name providers attach to the response schema.
const SchemaName = "interview_scores"

var structuredSchema = generateSchema[StructuredReply]()

// StructuredSchema returns the JSON schema for StructuredReply.
func StructuredSchema() any {
	return structuredSchema
}

func generateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// FromStructured reads the scores of a structured reply in order. Entries
// without an axis or with a non-integral score are skipped. Text that is not
// a structured reply returns false.
func FromStructured(raw string) ([]model.Score, bool) {
	body := stripFence(raw)
	if !gjson.Valid(body) {
		return nil, false
	}
	scores := gjson.Get(body, "scores")
	if !scores.IsArray() {
		return nil, false
	}
	out := make([]model.Score, 0, len(scores.Array()))
	scores.ForEach(func(_, s gjson.Result) bool {
		axis := s.Get("axis").String()
		if axis == "" {
			return true
		}
		score, ok := model.IntScore(s.Get("score"))
		if !ok {
			return true
		}
		out = append(out, model.Score{Axis: axis, Score: score})
		return true
	})
	return out, true
}

func stripFence(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
