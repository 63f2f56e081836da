// Package domain holds DTOs for the assessment http, service and persistence contracts
package domain

import (
	"encoding/json"
	"maps"
	"reflect"
	"strings"
	"sync"

	"creditrisk/internal/core/normalize"
	"creditrisk/internal/core/scoring"
	"creditrisk/internal/platform/net/http/bind"
)

func init() {
	if err := bind.RegisterValidation("foldoneof", "{0} must be one of [{1}]", foldOneOf); err != nil {
		panic(err)
	}
}

// ApplicantInput is the loan applicant as submitted
type ApplicantInput struct {
	RepaymentHistory   *string  `json:"repaymentHistory" validate:"required,foldoneof=excellent good fair poor none"`
	MonthlyIncome      *float64 `json:"monthlyIncome" validate:"required,finite,gt=0"`
	MonthlyDebtPayment *float64 `json:"monthlyDebtPayment" validate:"required,finite,gte=0"`
	BusinessYears      *float64 `json:"businessYears" validate:"required,finite,gte=0"`
	HasCollateral      *bool    `json:"hasCollateral" validate:"required"`
	Crops              []string `json:"crops" validate:"omitempty,max=50,dive,max=100"`
	MultipleCrops      *bool    `json:"multipleCrops,omitempty"`
	IsFPOMember        *bool    `json:"isFpoMember,omitempty"`
	FPOTrackRecord     string   `json:"fpoTrackRecord,omitempty" validate:"omitempty,foldoneof=good new bad unspecified"`

	// free context, only read by the model prompt and stored with the record
	Location       string `json:"location,omitempty" validate:"max=200"`
	FarmSize       any    `json:"farmSize,omitempty"`
	SeasonalIncome any    `json:"seasonalIncome,omitempty"`

	// Extra keeps body fields outside the schema; they reach the prompt and farmerData as sent
	Extra map[string]any `json:"-"`
}

// applicantFields is ApplicantInput without the custom codec
type applicantFields ApplicantInput

var (
	knownOnce sync.Once
	known     map[string]struct{}
)

// knownKeys lists the lowercased json names, since encoding/json matches keys case-insensitively
func knownKeys() map[string]struct{} {
	knownOnce.Do(func() {
		t := reflect.TypeFor[applicantFields]()
		known = make(map[string]struct{}, t.NumField())
		for i := range t.NumField() {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if name != "" && name != "-" {
				known[strings.ToLower(name)] = struct{}{}
			}
		}
	})
	return known
}

// UnmarshalJSON decodes the schema fields and collects the rest into Extra
func (in *ApplicantInput) UnmarshalJSON(b []byte) error {
	var f applicantFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	keys := knownKeys()
	for k, raw := range all {
		if _, ok := keys[strings.ToLower(k)]; ok {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[k] = v
	}
	*in = ApplicantInput(f)
	return nil
}

// MarshalJSON writes the schema fields with Extra merged in; schema fields win on clashes
func (in ApplicantInput) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(applicantFields(in))
	if err != nil || len(in.Extra) == 0 {
		return b, err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	merged := maps.Clone(in.Extra)
	maps.Copy(merged, fields)
	return json.Marshal(merged)
}

// Applicant projects the validated input onto the scoring model
func (in ApplicantInput) Applicant() scoring.Applicant {
	return scoring.Applicant{
		RepaymentHistory:   deref(in.RepaymentHistory),
		MonthlyIncome:      deref(in.MonthlyIncome),
		MonthlyDebtPayment: deref(in.MonthlyDebtPayment),
		BusinessYears:      deref(in.BusinessYears),
		HasCollateral:      deref(in.HasCollateral),
		Crops:              in.Crops,
		MultipleCrops:      deref(in.MultipleCrops),
		IsFPOMember:        deref(in.IsFPOMember),
		FPOTrackRecord:     in.FPOTrackRecord,
	}
}

func deref[T any](p *T) T {
	var z T
	if p == nil {
		return z
	}
	return *p
}

func foldOneOf(fl bind.FieldLevel) bool {
	return normalize.OneOf(fl.Field().String(), strings.Fields(fl.Param())...)
}
