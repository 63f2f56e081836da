// Package service implements the model connectivity probe
package service

import (
	"context"
	"strings"

	"creditrisk/internal/adapters/gemini"
	perr "creditrisk/internal/platform/errors"
	"creditrisk/internal/platform/logger"

	"github.com/google/uuid"
)

// DefaultPingText is sent when the caller gives no text
const DefaultPingText = "Say OK in one short sentence."

// Generator is the model seam, satisfied by *gemini.Caller
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// PingResult echoes the prompt and the model's answer
type PingResult struct {
	OK     bool   `json:"ok"`
	Model  string `json:"model"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Service defines the ping contract
type Service interface {
	Ping(ctx context.Context, text string) (PingResult, error)
}

// Svc implements Service over a Generator
type Svc struct {
	gen   Generator
	model string
}

// New creates a ping service bound to model
func New(gen Generator, model string) *Svc {
	if gen == nil {
		panic("ai.Service requires a non nil Generator")
	}
	return &Svc{gen: gen, model: model}
}

// Ping sends text through the resilient caller without the assessment deadline
func (s *Svc) Ping(ctx context.Context, text string) (PingResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultPingText
	}
	id := uuid.NewString()
	log := logger.C(ctx).With().Str("ping_id", id).Str("model", s.model).Logger()

	out, err := s.gen.Generate(ctx, s.model, text)
	if err != nil {
		log.Warn().Err(err).Msg("model ping failed")
		return PingResult{}, mapErr(err)
	}
	log.Debug().Int("output_len", len(out)).Msg("model ping ok")
	return PingResult{OK: true, Model: s.model, Input: text, Output: out}, nil
}

func mapErr(err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	if gemini.IsTransient(err) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "model unavailable")
	}
	return perr.Wrap(err, perr.ErrorCodeUpstream, "model request failed")
}
