package gemini

import (
	"context"
	"strings"

	perr "creditrisk/internal/platform/errors"

	"google.golang.org/genai"
)

// Generator produces text for a prompt; model "" selects the default model
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// contentAPI is the slice of genai.Models the client uses
type contentAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// newContentAPI builds the SDK client; swapped in tests
var newContentAPI = func(ctx context.Context, apiKey string) (contentAPI, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return c.Models, nil
}

// Client is a single-attempt Generator over the Gemini API
type Client struct {
	reg    *Registry
	models contentAPI
}

// NewClient prepares the SDK client. A blank key is allowed; every call then fails with a config error.
func NewClient(ctx context.Context, apiKey string, reg *Registry) (*Client, error) {
	c := &Client{reg: reg}
	if strings.TrimSpace(apiKey) == "" {
		return c, nil
	}
	m, err := newContentAPI(ctx, apiKey)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "gemini: create client")
	}
	c.models = m
	return c, nil
}

// Generate runs one generate content call and concatenates the text parts of the first candidate
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c.models == nil {
		return "", perr.Configf("gemini: GEMINI_API_KEY is not set")
	}
	h, err := c.reg.Lookup(model)
	if err != nil {
		return "", err
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:     ptrFloat32(h.Temperature),
		MaxOutputTokens: h.MaxOutputTokens,
	}
	resp, err := c.models.GenerateContent(ctx, h.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fromSDK(err)
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

func ptrFloat32(v float32) *float32 { return &v }
