package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"creditrisk/internal/services/api/assessment/domain"

	"github.com/xeipuuv/gojsonschema"
)

const replySchema = `{
  "type": "object",
  "required": ["aiAdjustment"],
  "properties": {
    "aiAdjustment": {"type": "number", "minimum": -5, "maximum": 15}
  }
}`

var schema = mustSchema(replySchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("extract: bad reply schema: %v", err))
	}
	return sc
}

// list fields stay raw: a non-array value is read as empty rather than failing the reply
type reply struct {
	AIAdjustment    float64         `json:"aiAdjustment"`
	Reasoning       json.RawMessage `json:"reasoning"`
	RiskSignals     json.RawMessage `json:"riskSignals"`
	PositiveSignals json.RawMessage `json:"positiveSignals"`
}

// Parse extracts the adjustment from raw model text. It never fails: anything unusable
// becomes the parse fallback carrying the raw text.
func Parse(raw string) domain.AIAdjustment {
	span, ok := jsonSpan(raw)
	if !ok {
		return domain.ParseFallback(raw)
	}
	res, err := schema.Validate(gojsonschema.NewStringLoader(span))
	if err != nil || !res.Valid() {
		return domain.ParseFallback(raw)
	}
	var r reply
	if err := json.Unmarshal([]byte(span), &r); err != nil {
		return domain.ParseFallback(raw)
	}
	return domain.AIAdjustment{
		Adjustment:      int(math.Round(r.AIAdjustment)),
		Reasoning:       stringify(r.Reasoning),
		RiskSignals:     stringify(r.RiskSignals),
		PositiveSignals: stringify(r.PositiveSignals),
		Source:          domain.SourceModel,
	}
}

// jsonSpan strips markdown fences and returns the first '{' through the last '}'
func jsonSpan(raw string) (string, bool) {
	s := strings.ReplaceAll(raw, "```json", "```")
	s = strings.ReplaceAll(s, "```JSON", "```")
	s = strings.TrimSpace(strings.ReplaceAll(s, "```", ""))
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func stringify(raw json.RawMessage) []string {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		items = nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case nil:
			out = append(out, "null")
		case float64, bool:
			out = append(out, fmt.Sprint(v))
		default:
			b, _ := json.Marshal(v)
			out = append(out, string(b))
		}
	}
	return out
}
