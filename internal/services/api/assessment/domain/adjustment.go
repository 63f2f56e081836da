package domain

// Source tags where an AI adjustment came from
type Source string

// Sources
const (
	SourceModel       Source = "model"
	SourceParse       Source = "parse_fallback"
	SourceUnavailable Source = "unavailable_fallback"
	SourceTimeout     Source = "timeout_fallback"
	SourceDisabled    Source = "disabled"
)

// Fallback reasoning
const (
	ReasonParse       = "AI output could not be parsed; adjustment set to 0."
	ReasonUnavailable = "AI is temporarily unavailable; adjustment set to 0."
	ReasonTimeout     = "AI timed out; adjustment set to 0."
	ReasonDisabled    = "AI adjustment disabled; adjustment set to 0."
)

// Adjustment bounds
const (
	MinAdjustment = -5
	MaxAdjustment = 15
)

// AIAdjustment is the model's nudge to the base score plus its explanation
type AIAdjustment struct {
	Adjustment      int      `json:"aiAdjustment"`
	Reasoning       []string `json:"reasoning"`
	RiskSignals     []string `json:"riskSignals"`
	PositiveSignals []string `json:"positiveSignals"`
	Source          Source   `json:"source"`

	// RawText keeps unparseable model output for diagnosis
	RawText string `json:"rawText,omitempty"`
}

// Fallback reports whether the adjustment was substituted
func (a AIAdjustment) Fallback() bool { return a.Source != SourceModel }

func fallback(src Source, reason string) AIAdjustment {
	return AIAdjustment{
		Reasoning:       []string{reason},
		RiskSignals:     []string{},
		PositiveSignals: []string{},
		Source:          src,
	}
}

// ParseFallback is used when the model answered but not in the expected shape
func ParseFallback(raw string) AIAdjustment {
	a := fallback(SourceParse, ReasonParse)
	a.RawText = raw
	return a
}

// UnavailableFallback is used when transient upstream errors outlast the retries
func UnavailableFallback() AIAdjustment { return fallback(SourceUnavailable, ReasonUnavailable) }

// TimeoutFallback is used when the assessment deadline wins the race
func TimeoutFallback() AIAdjustment { return fallback(SourceTimeout, ReasonTimeout) }

// DisabledFallback is used when the caller opted out of the model
func DisabledFallback() AIAdjustment { return fallback(SourceDisabled, ReasonDisabled) }
