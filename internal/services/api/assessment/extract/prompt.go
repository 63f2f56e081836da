// Package extract builds the model prompt and turns the model's reply into an AI adjustment
package extract

import (
	"encoding/json"
	"strings"

	"creditrisk/internal/core/scoring"
	"creditrisk/internal/services/api/assessment/domain"
)

const promptTemplate = `You are an agricultural credit risk analyst.
Return JSON ONLY with this exact schema:
{
  "aiAdjustment": number,        // integer in range -5..15
  "reasoning": string[],         // 3-6 bullet reasons, short
  "riskSignals": string[],       // 0-5 items
  "positiveSignals": string[]    // 0-5 items
}

Rules:
- aiAdjustment MUST be an integer.
- Range strictly -5..15.
- Use applicant context: seasonal income, farm profile, trends, FPO context.
- Do NOT repeat base scoring rules. Focus on nuanced factors beyond formula.

Applicant data:
{{applicant}}

Base score:
{{base}}`

// Prompt renders the JSON-only instruction for one applicant and its base score
func Prompt(in domain.ApplicantInput, base scoring.BaseResult) string {
	return strings.NewReplacer(
		"{{applicant}}", mustJSON(in),
		"{{base}}", mustJSON(base),
	).Replace(promptTemplate)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// both payloads are plain validated structs
		return "{}"
	}
	return string(b)
}
