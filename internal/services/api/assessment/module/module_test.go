package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modkit "creditrisk/internal/modkit"
	phttp "creditrisk/internal/platform/net/http"
	asssvc "creditrisk/internal/services/api/assessment/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type canned string

func (c canned) Generate(context.Context, string, string) (string, error) { return string(c), nil }

func TestModuleMountsUnderPrefix(t *testing.T) {
	m := New(modkit.Deps{}, canned(`{"aiAdjustment": 5}`), asssvc.Options{})
	assert.Equal(t, "assessments", m.Name())
	require.NoError(t, Migrate(context.Background(), modkit.Deps{}))

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	body := `{"repaymentHistory":"fair","monthlyIncome":800,"monthlyDebtPayment":200,` +
		`"businessYears":1,"hasCollateral":false,"isFpoMember":false}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assessments/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			AIAdjustment int    `json:"aiAdjustment"`
			FPOBoost     int    `json:"fpoBoost"`
			AssessmentID string `json:"assessmentId"`
			Meta         struct {
				AISource string `json:"aiSource"`
			} `json:"meta"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 5, env.Data.AIAdjustment)
	assert.Zero(t, env.Data.FPOBoost)
	assert.Equal(t, "model", env.Data.Meta.AISource)
	assert.Empty(t, env.Data.AssessmentID, "no store configured")
}

func TestModuleCustomPrefixAndRegister(t *testing.T) {
	extra := false
	m := New(modkit.Deps{}, nil, asssvc.Options{DisableAI: true},
		modkit.WithPrefix("risk"),
		modkit.WithRegister(func(r phttp.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) {
				extra = true
				w.WriteHeader(http.StatusNoContent)
			})
		}),
	)
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/risk/extra", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, extra)
	assert.NotNil(t, m.Service())
}
