package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"creditrisk/internal/platform/config"
	perr "creditrisk/internal/platform/errors"
	kit "creditrisk/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeContent struct {
	gotModel string
	gotCfg   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeContent) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel, f.gotCfg = model, cfg
	return f.resp, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}}}
}

func newFakeClient(t *testing.T, fc *fakeContent) *Client {
	t.Helper()
	kit.Serial(t)
	kit.Swap(t, &newContentAPI, func(context.Context, string) (contentAPI, error) { return fc, nil })
	reg := NewRegistry(Handle{Model: "gemini-2.5-flash", Temperature: 0.2, MaxOutputTokens: 512})
	c, err := NewClient(context.Background(), "k", reg)
	require.NoError(t, err)
	return c
}

func TestClient_GenerateConcatenatesParts(t *testing.T) {
	fc := &fakeContent{resp: textResponse(
		&genai.Part{Text: "thinking", Thought: true},
		&genai.Part{Text: `{"aiAdjustment":`},
		&genai.Part{Text: `4}`},
	)}
	c := newFakeClient(t, fc)

	out, err := c.Generate(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"aiAdjustment":4}`, out)
	assert.Equal(t, "gemini-2.5-flash", fc.gotModel)
	require.NotNil(t, fc.gotCfg.Temperature)
	assert.InDelta(t, 0.2, *fc.gotCfg.Temperature, 1e-6)
	assert.Equal(t, int32(512), fc.gotCfg.MaxOutputTokens)
}

func TestClient_EmptyResponse(t *testing.T) {
	c := newFakeClient(t, &fakeContent{resp: &genai.GenerateContentResponse{}})

	out, err := c.Generate(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClient_SDKErrorIsConverted(t *testing.T) {
	c := newFakeClient(t, &fakeContent{err: genai.APIError{Code: 503, Message: "The model is overloaded."}})

	_, err := c.Generate(context.Background(), "", "prompt")
	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 503, ce.Status)
	assert.True(t, IsTransient(err))
}

func TestClient_UnknownModelIsConfigError(t *testing.T) {
	c := newFakeClient(t, &fakeContent{})

	_, err := c.Generate(context.Background(), "gpt-nope", "prompt")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfig))
	assert.False(t, IsTransient(err))
}

func TestClient_MissingKey(t *testing.T) {
	t.Parallel()

	c, err := NewClient(context.Background(), "  ", RegistryFromConfig(Config{Model: DefaultModel}))
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "", "prompt")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfig))
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Handle{Model: "a"}, Handle{Model: "b"}, Handle{Model: " "})
	assert.Equal(t, "a", r.Default())
	assert.Equal(t, []string{"a", "b"}, r.Models())

	h, err := r.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "a", h.Model)

	_, err = r.Lookup("c")
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "model", e.Field())

	var nilReg *Registry
	_, err = nilReg.Lookup("a")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfig))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_MAX_ATTEMPTS", "5")
	t.Setenv("GEMINI_CALL_TIMEOUT", "3s")
	t.Setenv("GEMINI_BACKOFF_BASE", "250")

	c := ConfigFromEnv(config.New())
	assert.Equal(t, "gemini-2.5-pro", c.Model)
	assert.Equal(t, 5, c.Retry.MaxAttempts)
	assert.Equal(t, 3*time.Second, c.Retry.CallTimeout)
	assert.Equal(t, 250*time.Millisecond, c.Retry.BackoffBase)
	assert.Equal(t, DefaultMaxRetryDelay, c.Retry.MaxRetryDelay)
	assert.Equal(t, DefaultMaxConcurrent, c.MaxConcurrent)
	assert.Empty(t, c.APIKey)
}
